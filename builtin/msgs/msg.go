// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package msgs defines the messages contracts emit and the responses the host feeds back.
package msgs

// Msg is an instruction for the host. The set of variants is closed.
type Msg interface {
	Route() string
}

type StakingDelegate struct {
	Validator string
	Amount    Coin
}

type StakingUndelegate struct {
	Validator string
	Amount    Coin
}

type StakingRedelegate struct {
	SrcValidator string
	DstValidator string
	Amount       Coin
}

// ClaimRewards withdraws the rewards the sender accrued on validator in denom.
type ClaimRewards struct {
	Validator string
	Denom     string
}

type BankSend struct {
	ToAddress string
	Amount    Coins
}

// WasmInstantiate creates a contract from a stored code.
type WasmInstantiate struct {
	Admin  string
	CodeID uint64
	Label  string
	Msg    any
	Funds  Coins
}

// WasmExecute calls another contract.
type WasmExecute struct {
	Contract string
	Msg      any
	Funds    Coins
}

func (StakingDelegate) Route() string   { return "staking/delegate" }
func (StakingUndelegate) Route() string { return "staking/undelegate" }
func (StakingRedelegate) Route() string { return "staking/redelegate" }
func (ClaimRewards) Route() string      { return "distribution/claim_rewards" }
func (BankSend) Route() string          { return "bank/send" }
func (WasmInstantiate) Route() string   { return "wasm/instantiate" }
func (WasmExecute) Route() string       { return "wasm/execute" }

// ReplyOn tells the host when a submessage result goes back to the sender.
type ReplyOn uint8

const (
	ReplyNever ReplyOn = iota
	ReplySuccess
	ReplyError
	ReplyAlways
)

func (r ReplyOn) String() string {
	switch r {
	case ReplySuccess:
		return "success"
	case ReplyError:
		return "error"
	case ReplyAlways:
		return "always"
	default:
		return "never"
	}
}

// SubMsg is a message plus the reply contract.
type SubMsg struct {
	ID      uint64
	Msg     Msg
	ReplyOn ReplyOn
}

// NewSubMsg wraps msg without a reply.
func NewSubMsg(msg Msg) SubMsg {
	return SubMsg{Msg: msg, ReplyOn: ReplyNever}
}

// ReplyAlwaysOn wraps msg so its result always comes back under id.
func ReplyAlwaysOn(msg Msg, id uint64) SubMsg {
	return SubMsg{ID: id, Msg: msg, ReplyOn: ReplyAlways}
}
