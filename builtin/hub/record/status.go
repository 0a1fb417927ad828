// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package record

// Status is the lifecycle stage of a delegation record.
type Status uint8

const (
	Unknown Status = iota
	Delegated
	Unbonding
	Redelegating
	Unbonded
)

var labels = [...]string{
	Unknown:      "Unknown",
	Delegated:    "Delegated",
	Unbonding:    "Unbonding",
	Redelegating: "Redelegating",
	Unbonded:     "Unbonded",
}

func (s Status) String() string {
	if int(s) < len(labels) {
		return labels[s]
	}
	return labels[Unknown]
}

// ParseStatus never fails: labels it does not know decode to Unknown.
func ParseStatus(label string) Status {
	for i, l := range labels {
		if l == label {
			return Status(i)
		}
	}
	return Unknown
}
