// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config persists the single hub configuration slot.
package config

import (
	"github.com/pkg/errors"

	"github.com/vechain/nfthub/builtin/hub/reverts"
	"github.com/vechain/nfthub/builtin/solidity"
)

const slot = "config"

// Config is the hub configuration. NFTContractAddr is empty until the collection is provisioned.
type Config struct {
	MintedNFTs       uint64 `json:"minted_nfts"`
	UnbondingSeconds uint64 `json:"unbonding_seconds"`
	NFTContractAddr  string `json:"nft_contract_addr,omitempty"`
}

// New returns the configuration written at instantiation.
func New(unbondingSeconds uint64) Config {
	return Config{UnbondingSeconds: unbondingSeconds}
}

// Provisioned reports whether the NFT collection address is known.
func (c Config) Provisioned() bool {
	return c.NFTContractAddr != ""
}

// Store reads and writes the configuration of one hub.
type Store struct {
	raw *solidity.Raw[Config]
}

func NewStore(ctx *solidity.Context) *Store {
	return &Store{raw: solidity.NewRaw[Config](ctx, slot)}
}

// Get fails if the hub was never instantiated.
func (s *Store) Get() (Config, error) {
	cfg, found, err := s.raw.Get()
	if err != nil {
		return Config{}, errors.Wrap(err, "load hub config")
	}
	if !found {
		return Config{}, errors.New("hub config not initialized")
	}
	return cfg, nil
}

func (s *Store) Set(cfg Config) error {
	if err := s.raw.Set(cfg); err != nil {
		return errors.Wrap(err, "save hub config")
	}
	return nil
}

// Init writes the initial configuration.
func (s *Store) Init(unbondingSeconds uint64) (Config, error) {
	cfg := New(unbondingSeconds)
	return cfg, s.Set(cfg)
}

// RequireCollection returns the configuration and the NFT collection address,
// failing with CollaboratorNotProvisioned if it is not set yet.
func (s *Store) RequireCollection() (Config, string, error) {
	cfg, err := s.Get()
	if err != nil {
		return Config{}, "", err
	}
	if !cfg.Provisioned() {
		return Config{}, "", reverts.ErrCollaboratorNotProvisioned
	}
	return cfg, cfg.NFTContractAddr, nil
}

// SetCollection records the NFT collection address. It can happen only once.
func (s *Store) SetCollection(addr string) (Config, error) {
	cfg, err := s.Get()
	if err != nil {
		return Config{}, err
	}
	if cfg.Provisioned() {
		return Config{}, reverts.ErrCollaboratorAlreadyProvisioned
	}
	cfg.NFTContractAddr = addr
	return cfg, s.Set(cfg)
}

// IncrementMinted bumps the minted counter and returns the new configuration.
func (s *Store) IncrementMinted() (Config, error) {
	cfg, err := s.Get()
	if err != nil {
		return Config{}, err
	}
	cfg.MintedNFTs++
	return cfg, s.Set(cfg)
}
