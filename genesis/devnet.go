// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/tokencore/token"
)

// DevAccount account for development.
type DevAccount struct {
	Address    token.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-funded accounts of the dev network.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{token.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

func ether(n int64) *math.HexOrDecimal256 {
	v := new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
	return (*math.HexOrDecimal256)(v)
}

// NewDevnet create genesis for local development. The first dev account owns every engine.
func NewDevnet() *Genesis {
	accs := DevAccounts()
	gen := &CustomGenesis{
		Name:       "devnet",
		LaunchTime: 1735689600, // 2025-01-01T00:00:00Z
		Owner:      accs[0].Address,
		Token: TokenParams{
			Name:     "Dev Token",
			Symbol:   "DEV",
			Decimals: 18,
			Supply:   ether(1_000_000_000),
		},
		Staking: &Staking{Options: []StakingOption{
			{Duration: 30 * 24 * 3600, RateBasisPoints: 50},
			{Duration: 365 * 24 * 3600, RateBasisPoints: 200},
		}},
		Burning: &Burning{
			Limit:            ether(10_000_000),
			SingleBurnAmount: ether(100_000),
			Allocation:       ether(10_000_000),
		},
		Distribution: Distribution{
			LockRole:            LockRoleLockable,
			WithdrawableFunding: ether(1_000_000),
		},
	}
	for _, acc := range accs[1:] {
		gen.Allocations = append(gen.Allocations, Allocation{Address: acc.Address, Amount: ether(1_000_000)})
	}

	g, err := NewCustomNet(gen)
	if err != nil {
		panic(err)
	}
	return g
}
