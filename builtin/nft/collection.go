// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package nft is a collection contract whose token metadata can be rewritten by its minter.
package nft

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/builtin/solidity"
	"github.com/vechain/nfthub/log"
	"github.com/vechain/nfthub/xenv"
)

var logger = log.WithContext("pkg", "nft")

type collectionInfo struct {
	Name   string
	Symbol string
	Minter string
}

type token struct {
	Owner     string
	TokenURI  string
	Extension Metadata
}

// Collection binds the contract logic to the storage of one collection.
type Collection struct {
	info   *solidity.Raw[collectionInfo]
	count  *solidity.Raw[uint64]
	tokens *solidity.Mapping[solidity.StringKey, []byte]
	owners *solidity.Mapping[solidity.StringKey, []string]
}

func New(ctx *solidity.Context) *Collection {
	return &Collection{
		info:   solidity.NewRaw[collectionInfo](ctx, "info"),
		count:  solidity.NewRaw[uint64](ctx, "count"),
		tokens: solidity.NewMapping[solidity.StringKey, []byte](ctx, "tokens"),
		owners: solidity.NewMapping[solidity.StringKey, []string](ctx, "owners"),
	}
}

// Instantiate creates the collection.
func (c *Collection) Instantiate(env xenv.Env, info xenv.MessageInfo, msg InstantiateMsg) (*msgs.Response, error) {
	if _, found, err := c.info.Get(); err != nil {
		return nil, err
	} else if found {
		return nil, errors.New("collection already instantiated")
	}
	if msg.Minter == "" {
		return nil, errors.New("minter required")
	}
	if err := c.info.Set(collectionInfo{Name: msg.Name, Symbol: msg.Symbol, Minter: msg.Minter}); err != nil {
		return nil, err
	}
	return msgs.NewResponse().
		AddAttribute("action", "instantiate").
		AddAttribute("minter", msg.Minter), nil
}

// Execute handles a collection message.
func (c *Collection) Execute(env xenv.Env, info xenv.MessageInfo, msg any) (*msgs.Response, error) {
	switch m := msg.(type) {
	case MintMsg:
		return c.mint(info.Sender, m)
	case UpdateExtensionMsg:
		return c.updateExtension(info.Sender, m)
	case TransferMsg:
		return c.transfer(info.Sender, m)
	default:
		return nil, errors.Errorf("unknown nft message %T", msg)
	}
}

func (c *Collection) minter() (string, error) {
	info, found, err := c.info.Get()
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotCreated
	}
	return info.Minter, nil
}

func (c *Collection) mint(sender string, msg MintMsg) (*msgs.Response, error) {
	minter, err := c.minter()
	if err != nil {
		return nil, err
	}
	if sender != minter {
		return nil, ErrUnauthorized
	}
	if _, found, err := c.load(msg.TokenID); err != nil {
		return nil, err
	} else if found {
		return nil, ErrClaimed
	}

	if err := c.save(msg.TokenID, &token{Owner: msg.Owner, TokenURI: msg.TokenURI, Extension: msg.Extension}); err != nil {
		return nil, err
	}
	if err := c.index(msg.Owner, msg.TokenID, true); err != nil {
		return nil, err
	}
	n, _, err := c.count.Get()
	if err != nil {
		return nil, err
	}
	if err := c.count.Set(n + 1); err != nil {
		return nil, err
	}

	logger.Debug("minted", "token", msg.TokenID, "owner", msg.Owner, "traits", len(msg.Extension.Attributes))
	return msgs.NewResponse().
		AddAttribute("action", "mint").
		AddAttribute("minter", sender).
		AddAttribute("owner", msg.Owner).
		AddAttribute("token_id", msg.TokenID), nil
}

func (c *Collection) updateExtension(sender string, msg UpdateExtensionMsg) (*msgs.Response, error) {
	minter, err := c.minter()
	if err != nil {
		return nil, err
	}
	if sender != minter {
		return nil, ErrUnauthorized
	}
	t, found, err := c.load(msg.TokenID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrap(ErrNotFound, msg.TokenID)
	}
	t.Extension = msg.Extension
	if err := c.save(msg.TokenID, t); err != nil {
		return nil, err
	}
	return msgs.NewResponse().
		AddAttribute("action", "update_extension").
		AddAttribute("token_id", msg.TokenID), nil
}

func (c *Collection) transfer(sender string, msg TransferMsg) (*msgs.Response, error) {
	t, found, err := c.load(msg.TokenID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrap(ErrNotFound, msg.TokenID)
	}
	if t.Owner != sender {
		return nil, ErrUnauthorized
	}
	if err := c.index(t.Owner, msg.TokenID, false); err != nil {
		return nil, err
	}
	t.Owner = msg.Recipient
	if err := c.save(msg.TokenID, t); err != nil {
		return nil, err
	}
	if err := c.index(msg.Recipient, msg.TokenID, true); err != nil {
		return nil, err
	}
	return msgs.NewResponse().
		AddAttribute("action", "transfer_nft").
		AddAttribute("sender", sender).
		AddAttribute("recipient", msg.Recipient).
		AddAttribute("token_id", msg.TokenID), nil
}

// Query answers a collection query message.
func (c *Collection) Query(msg any) (any, error) {
	switch m := msg.(type) {
	case OwnerOfQuery:
		owner, err := c.OwnerOf(m.TokenID)
		if err != nil {
			return nil, err
		}
		return &OwnerOfResponse{Owner: owner}, nil
	case NumTokensQuery:
		n, err := c.NumTokens()
		if err != nil {
			return nil, err
		}
		return &NumTokensResponse{Count: n}, nil
	case ContractInfoQuery:
		return c.ContractInfo()
	case AllNftInfoQuery:
		return c.AllNftInfo(m.TokenID)
	case TokensQuery:
		return c.Tokens(m.Owner)
	default:
		return nil, errors.Errorf("unknown nft query %T", msg)
	}
}

// AllNftInfo returns owner and metadata of a token.
func (c *Collection) AllNftInfo(tokenID string) (*AllNftInfo, error) {
	t, found, err := c.load(tokenID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrap(ErrNotFound, tokenID)
	}
	return &AllNftInfo{Owner: t.Owner, TokenURI: t.TokenURI, Extension: t.Extension}, nil
}

// OwnerOf returns the owner of a token.
func (c *Collection) OwnerOf(tokenID string) (string, error) {
	info, err := c.AllNftInfo(tokenID)
	if err != nil {
		return "", err
	}
	return info.Owner, nil
}

// NumTokens returns how many tokens were minted.
func (c *Collection) NumTokens() (uint64, error) {
	n, _, err := c.count.Get()
	return n, err
}

// Tokens lists token ids held by owner, in numeric order when ids are numeric.
func (c *Collection) Tokens(owner string) ([]string, error) {
	ids, err := c.owners.Get(solidity.StringKey(owner))
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// ContractInfo returns name and symbol of the collection.
func (c *Collection) ContractInfo() (*ContractInfo, error) {
	info, found, err := c.info.Get()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotCreated
	}
	return &ContractInfo{Name: info.Name, Symbol: info.Symbol}, nil
}

// load decodes a token. Tokens are rlp encoded and snappy compressed.
func (c *Collection) load(tokenID string) (*token, bool, error) {
	blob, found, err := c.tokens.Lookup(solidity.StringKey(tokenID))
	if err != nil || !found {
		return nil, false, err
	}
	raw, err := snappy.Decode(nil, blob)
	if err != nil {
		return nil, false, errors.Wrap(err, "decompress token")
	}
	var t token
	if err := rlp.DecodeBytes(raw, &t); err != nil {
		return nil, false, errors.Wrap(err, "decode token")
	}
	return &t, true, nil
}

func (c *Collection) save(tokenID string, t *token) error {
	raw, err := rlp.EncodeToBytes(t)
	if err != nil {
		return errors.Wrap(err, "encode token")
	}
	return c.tokens.Set(solidity.StringKey(tokenID), snappy.Encode(nil, raw))
}

func (c *Collection) index(owner, tokenID string, add bool) error {
	key := solidity.StringKey(owner)
	ids, err := c.owners.Get(key)
	if err != nil {
		return err
	}
	if add {
		ids = append(ids, tokenID)
		slices.SortFunc(ids, compareIDs)
	} else {
		ids = slices.DeleteFunc(ids, func(id string) bool { return id == tokenID })
	}
	if len(ids) == 0 {
		c.owners.Delete(key)
		return nil
	}
	return c.owners.Set(key, ids)
}

func compareIDs(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
