// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nfthub/api/accounts"
	apihub "github.com/vechain/nfthub/api/hub"
	"github.com/vechain/nfthub/api/middleware"
	apinft "github.com/vechain/nfthub/api/nft"
	"github.com/vechain/nfthub/builtin/hub"
	"github.com/vechain/nfthub/builtin/hub/config"
	"github.com/vechain/nfthub/builtin/msgs"
	"github.com/vechain/nfthub/genesis"
	"github.com/vechain/nfthub/lvldb"
	"github.com/vechain/nfthub/runtime"
)

var (
	hubAddr = runtime.ContractAddress(runtime.CodeHub, 1)
	nftAddr = runtime.ContractAddress(runtime.CodeNFT, 2)
)

func newServer(t *testing.T, solo bool) *httptest.Server {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gen := genesis.NewDevnet()
	gen.Height = 12345
	gen.Staking.Validators = []string{"validator", "validator1", "validator2"}
	rt, err := runtime.New(db, gen)
	require.NoError(t, err)

	ts := httptest.NewServer(New(rt, Options{
		AllowedOrigins: "*",
		HubAddress:     hubAddr,
		SoloMode:       solo,
		EnableMetrics:  true,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) // nolint:gosec
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) // nolint:gosec
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Header.Get(middleware.RequestIDHeader))
	return body, res.StatusCode
}

func TestHubLifecycle(t *testing.T) {
	ts := newServer(t, true)
	creator := genesis.DevAccounts[0]

	body, code := httpGet(t, ts.URL+"/hub/config")
	require.Equal(t, http.StatusOK, code, string(body))
	var cfg config.Config
	require.NoError(t, json.Unmarshal(body, &cfg))
	assert.Equal(t, nftAddr, cfg.NFTContractAddr)

	body, code = httpPost(t, ts.URL+"/hub/delegate", apihub.Call{Sender: creator, Funds: msgs.Coins{msgs.NewCoin("token", 100)}})
	require.Equal(t, http.StatusOK, code, string(body))
	var res runtime.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, hubAddr, res.Contract)
	assert.NotEmpty(t, res.Events)

	body, code = httpGet(t, ts.URL+"/nft/"+nftAddr+"/tokens/0")
	require.Equal(t, http.StatusOK, code, string(body))
	var token struct {
		ID        string `json:"id"`
		Owner     string `json:"owner"`
		Extension struct {
			Name       string `json:"name"`
			Attributes []struct {
				TraitType string `json:"trait_type"`
				Value     string `json:"value"`
			} `json:"attributes"`
		} `json:"extension"`
	}
	require.NoError(t, json.Unmarshal(body, &token))
	assert.Equal(t, creator, token.Owner)
	assert.Equal(t, hub.TokenName("0"), token.Extension.Name)
	require.Len(t, token.Extension.Attributes, 1)
	assert.Equal(t, "validator1", token.Extension.Attributes[0].TraitType)
	assert.Equal(t, "100@token", token.Extension.Attributes[0].Value)

	body, code = httpGet(t, ts.URL+"/nft/"+nftAddr+"/owners/"+creator)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `["0"]`, string(body))

	body, code = httpGet(t, ts.URL+"/accounts/"+hubAddr+"/delegations")
	require.Equal(t, http.StatusOK, code)
	var ds []accounts.Delegation
	require.NoError(t, json.Unmarshal(body, &ds))
	require.Len(t, ds, 1)
	assert.Equal(t, "100token", ds[0].Amount.String())

	_, code = httpPost(t, ts.URL+"/hub/tokens/0/unbond", apihub.Call{Sender: creator})
	require.Equal(t, http.StatusOK, code)

	body, code = httpPost(t, ts.URL+"/hub/tokens/0/redeem", apihub.Call{Sender: creator})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "Cannot redeem bond of the '0' NFT")

	_, code = httpPost(t, ts.URL+"/chain/advance", chainAdvance{Blocks: 1, Seconds: 100})
	require.Equal(t, http.StatusOK, code)

	_, code = httpPost(t, ts.URL+"/hub/tokens/0/redeem", apihub.Call{Sender: creator})
	require.Equal(t, http.StatusOK, code)

	body, code = httpGet(t, ts.URL+"/accounts/"+creator+"/balances")
	require.Equal(t, http.StatusOK, code)
	var coins msgs.Coins
	require.NoError(t, json.Unmarshal(body, &coins))
	require.Len(t, coins, 1)
	assert.Equal(t, "1000000000000000000000token", coins[0].String())
}

type chainAdvance struct {
	Blocks  uint64 `json:"blocks"`
	Seconds uint64 `json:"seconds"`
}

func TestErrorStatuses(t *testing.T) {
	ts := newServer(t, false)

	_, code := httpPost(t, ts.URL+"/hub/delegate", apihub.Call{Sender: "alice"})
	assert.Equal(t, http.StatusBadRequest, code, "no funds")

	body, code := httpPost(t, ts.URL+"/hub/tokens/9/unbond", apihub.Call{Sender: "alice"})
	assert.Equal(t, http.StatusNotFound, code, string(body))

	_, code = httpPost(t, ts.URL+"/hub/delegate", map[string]any{"sender": "alice", "bogus": 1})
	assert.Equal(t, http.StatusBadRequest, code, "unknown field")

	_, code = httpPost(t, ts.URL+"/hub/delegate", apihub.Call{Funds: msgs.Coins{msgs.NewCoin("token", 1)}})
	assert.Equal(t, http.StatusBadRequest, code, "no sender")

	_, code = httpPost(t, ts.URL+"/hub/delegate", apihub.Call{Sender: "nobody", Funds: msgs.Coins{msgs.NewCoin("token", 1)}})
	assert.Equal(t, http.StatusBadRequest, code, "insufficient funds")

	_, code = httpPost(t, ts.URL+"/chain/advance", chainAdvance{Blocks: 1})
	assert.Equal(t, http.StatusForbidden, code, "not solo")

	_, code = httpGet(t, ts.URL+"/chain/contracts/nfthub1unknown")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestChainEndpoints(t *testing.T) {
	ts := newServer(t, true)

	body, code := httpGet(t, ts.URL+"/chain/head")
	require.Equal(t, http.StatusOK, code)
	var head runtime.Head
	require.NoError(t, json.Unmarshal(body, &head))
	assert.Equal(t, uint64(12345), head.Height)

	body, code = httpGet(t, ts.URL+"/chain/validators")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `["validator","validator1","validator2"]`, string(body))

	body, code = httpGet(t, ts.URL+"/chain/contracts/"+nftAddr)
	require.Equal(t, http.StatusOK, code)
	var info runtime.ContractInfo
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, hubAddr, info.Admin)

	_, code = httpPost(t, ts.URL+"/chain/advance", chainAdvance{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestNFTTransfer(t *testing.T) {
	ts := newServer(t, false)
	creator := genesis.DevAccounts[0]

	_, code := httpPost(t, ts.URL+"/hub/delegate", apihub.Call{Sender: creator, Funds: msgs.Coins{msgs.NewCoin("token", 100)}})
	require.Equal(t, http.StatusOK, code)

	body, code := httpGet(t, ts.URL+"/nft/"+nftAddr)
	require.Equal(t, http.StatusOK, code, string(body))
	assert.JSONEq(t, `{"name":"Alliance NFT Collection","symbol":"ANC","num_tokens":1}`, string(body))

	body, code = httpGet(t, ts.URL+"/nft/"+nftAddr+"/tokens/0/owner")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"owner":"`+creator+`"}`, string(body))

	_, code = httpGet(t, ts.URL+"/nft/"+nftAddr+"/tokens/5/owner")
	assert.Equal(t, http.StatusNotFound, code)

	_, code = httpPost(t, ts.URL+"/nft/"+nftAddr+"/tokens/0/transfer", apinft.Transfer{Sender: creator})
	assert.Equal(t, http.StatusBadRequest, code, "no recipient")

	_, code = httpPost(t, ts.URL+"/nft/"+nftAddr+"/tokens/0/transfer", apinft.Transfer{Sender: "bob", Recipient: "bob"})
	assert.Equal(t, http.StatusForbidden, code, "not owner")

	body, code = httpPost(t, ts.URL+"/nft/"+nftAddr+"/tokens/0/transfer", apinft.Transfer{Sender: creator, Recipient: "bob"})
	require.Equal(t, http.StatusOK, code, string(body))

	body, code = httpGet(t, ts.URL+"/nft/"+nftAddr+"/owners/bob")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `["0"]`, string(body))

	body, code = httpPost(t, ts.URL+"/hub/tokens/0/unbond", apihub.Call{Sender: creator})
	assert.Equal(t, http.StatusBadRequest, code, string(body))

	_, code = httpPost(t, ts.URL+"/hub/tokens/0/unbond", apihub.Call{Sender: "bob"})
	assert.Equal(t, http.StatusOK, code)
}
