// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hub

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/builtin/nft"
	"github.com/vechain/nfthub/builtin/solidity"
	"github.com/vechain/nfthub/lvldb"
	"github.com/vechain/nfthub/state"
	"github.com/vechain/nfthub/xenv"
)

const (
	hubAddr     = "cosmos2contract"
	nftAddr     = "terra1nftcollection"
	creator     = "creator"
	blockHeight = uint64(12345)
	blockTime   = uint64(1_571_797_419)
	unbonding   = uint64(100)
)

var errNotFound = errors.New("token not found")

// fakeCollection stands in for the NFT collection, applying the hub's messages directly.
type fakeCollection struct {
	addr   string
	tokens map[string]*nft.AllNftInfo
}

func (c *fakeCollection) AllNftInfo(contract, tokenID string) (*nft.AllNftInfo, error) {
	if contract != c.addr {
		return nil, errors.New("wrong collection " + contract)
	}
	info, ok := c.tokens[tokenID]
	if !ok {
		return nil, errNotFound
	}
	cpy := *info
	cpy.Extension.Attributes = append([]nft.Trait(nil), info.Extension.Attributes...)
	return &cpy, nil
}

func (c *fakeCollection) apply(t *testing.T, msg msgs.Msg) {
	exec, ok := msg.(msgs.WasmExecute)
	require.True(t, ok, "expected wasm execute, got %T", msg)
	require.Equal(t, c.addr, exec.Contract)
	switch m := exec.Msg.(type) {
	case nft.MintMsg:
		c.tokens[m.TokenID] = &nft.AllNftInfo{Owner: m.Owner, Extension: m.Extension}
	case nft.UpdateExtensionMsg:
		c.tokens[m.TokenID].Extension = m.Extension
	default:
		t.Fatalf("unexpected nft msg %T", m)
	}
}

type fakeDirectory struct {
	validators []string
	calls      int
	err        error
}

func (d *fakeDirectory) ListValidators() ([]string, error) {
	d.calls++
	return d.validators, d.err
}

type testHub struct {
	*Hub
	nfts       *fakeCollection
	validators *fakeDirectory
	env        xenv.Env
}

func newHub(t *testing.T) *testHub {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	nfts := &fakeCollection{addr: nftAddr, tokens: make(map[string]*nft.AllNftInfo)}
	validators := &fakeDirectory{validators: []string{"validator", "validator1", "validator2"}}
	ctx := solidity.NewContext(hubAddr, state.New(db))
	return &testHub{
		Hub:        New(ctx, nfts, validators),
		nfts:       nfts,
		validators: validators,
		env: xenv.Env{
			Block:    xenv.BlockContext{Height: blockHeight, Time: blockTime, ChainID: "hub-test"},
			Contract: xenv.ContractContext{Address: hubAddr},
		},
	}
}

func ok(events ...msgs.Event) msgs.SubMsgResult {
	return msgs.SubMsgResult{Ok: &msgs.SubMsgResponse{Events: events}}
}

func failed(reason string) msgs.SubMsgResult {
	return msgs.SubMsgResult{Err: reason}
}

func instantiatedEvent(addr string) msgs.Event {
	return msgs.NewEvent("instantiate").Add("_contract_address", addr).Add("code_id", "1")
}

// provisioned returns a hub whose collection is already known.
func provisioned(t *testing.T) *testHub {
	h := newHub(t)
	_, err := h.Instantiate(h.env, xenv.MessageInfo{Sender: creator}, InstantiateMsg{
		NFTCodeID:        1,
		UnbondingSeconds: unbonding,
		Collection:       CollectionInfo{Name: "Alliance NFT Collection", Symbol: "ANC"},
	})
	require.NoError(t, err)
	_, err = h.Reply(h.env, msgs.Reply{ID: uint64(ReplyInstantiate), Result: ok(instantiatedEvent(nftAddr))})
	require.NoError(t, err)
	return h
}

// mint delegates funds as creator and applies the mint with its acknowledgement.
func (h *testHub) mint(t *testing.T, funds msgs.Coins) string {
	res, err := h.Execute(h.env, xenv.MessageInfo{Sender: creator, Funds: funds}, Delegate{})
	require.NoError(t, err)
	h.nfts.apply(t, res.Messages[0].Msg)
	_, err = h.Reply(h.env, msgs.Reply{ID: uint64(ReplyMintNFT), Result: ok()})
	require.NoError(t, err)
	id, _ := res.Attribute("token_id")
	return id
}

// at returns the env advanced to time.
func (h *testHub) at(time uint64) xenv.Env {
	env := h.env
	env.Block.Time = time
	return env
}
