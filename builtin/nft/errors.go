// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nft

import "github.com/pkg/errors"

var (
	ErrNotFound     = errors.New("token not found")
	ErrUnauthorized = errors.New("Unauthorized")
	ErrClaimed      = errors.New("token_id already claimed")
	ErrNotCreated   = errors.New("collection not instantiated")
)
