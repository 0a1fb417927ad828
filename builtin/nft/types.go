// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nft

// Trait is a single metadata attribute of a token.
type Trait struct {
	DisplayType string `json:"display_type"`
	TraitType   string `json:"trait_type"`
	Value       string `json:"value"`
	Timestamp   uint64 `json:"timestamp"`
}

// Metadata is the mutable extension of a token. Attribute order is preserved.
type Metadata struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Attributes  []Trait `json:"attributes"`
}

// AllNftInfo is the owner and metadata of a token.
type AllNftInfo struct {
	Owner     string   `json:"owner"`
	TokenURI  string   `json:"token_uri,omitempty"`
	Extension Metadata `json:"extension"`
}

// ContractInfo describes a collection.
type ContractInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// InstantiateMsg provisions a collection.
type InstantiateMsg struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Minter string `json:"minter"`
}

// MintMsg creates a token owned by Owner.
type MintMsg struct {
	TokenID   string   `json:"token_id"`
	Owner     string   `json:"owner"`
	TokenURI  string   `json:"token_uri,omitempty"`
	Extension Metadata `json:"extension"`
}

// UpdateExtensionMsg replaces a token's metadata. Only the minter may send it.
type UpdateExtensionMsg struct {
	TokenID   string   `json:"token_id"`
	Extension Metadata `json:"extension"`
}

// TransferMsg moves a token to Recipient. Only the owner may send it.
type TransferMsg struct {
	TokenID   string `json:"token_id"`
	Recipient string `json:"recipient"`
}

// OwnerOfQuery asks for the owner of a token.
type OwnerOfQuery struct {
	TokenID string `json:"token_id"`
}

// OwnerOfResponse answers OwnerOfQuery.
type OwnerOfResponse struct {
	Owner string `json:"owner"`
}

// NumTokensQuery asks how many tokens were minted.
type NumTokensQuery struct{}

// NumTokensResponse answers NumTokensQuery.
type NumTokensResponse struct {
	Count uint64 `json:"count"`
}

type ContractInfoQuery struct{}

// AllNftInfoQuery asks for the owner and metadata of a token.
type AllNftInfoQuery struct {
	TokenID string `json:"token_id"`
}

// TokensQuery lists the tokens held by Owner.
type TokensQuery struct {
	Owner string `json:"owner"`
}
