package coinparam

import (
	"github.com/mit-dci/lyra2/hashchain"
)

// Vertcoin proof of work forks.
const (
	// VertcoinLyra2REHeight is the first block hashed with Lyra2RE.
	VertcoinLyra2REHeight = 208301

	// VertcoinLyra2REv2Height is the first block hashed with Lyra2REv2.
	VertcoinLyra2REv2Height = 347000

	// VertcoinLyra2REv3Height is the first block hashed with Lyra2REv3.
	VertcoinLyra2REv3Height = 1080000
)

// vertcoinSchedule is shared by every Vertcoin network.
var vertcoinSchedule = []PoWEpoch{
	{StartHeight: 0, Recipe: hashchain.ScryptNRecipe},
	{StartHeight: VertcoinLyra2REHeight, Recipe: hashchain.Lyra2RERecipe},
	{StartHeight: VertcoinLyra2REv2Height, Recipe: hashchain.Lyra2REv2Recipe},
	{StartHeight: VertcoinLyra2REv3Height, Recipe: hashchain.Lyra2REv3Recipe},
}

// ==================== Vertcoin

var VertcoinParams = Params{
	Name:         "vtc",
	PowLimit:     vertcoinPowLimit,
	PowLimitBits: 0x1e0fffff,
	PoWSchedule:  vertcoinSchedule,

	GenesisHeader: newHeaderFromStr("01000000000000000000000000000000000000000000000000000000" +
		"0000000000000000e72301fc49323ee151cf1048230f032ca589753ba7086222" +
		"a5c023e3a08cf34a8b35cf52f0ff0f1e0eba5700"),
	GenesisHash: newHashFromStr("4d96a915f49d40b1e5c2844d1ee2dccb90013a99" +
		"0ccea12c492d22110489f0c4"),
}

// ==================== VertcoinTestnet

// VertcoinTestNetParams has run Lyra2REv2 from its genesis block.  Its
// genesis header is not carried here.
var VertcoinTestNetParams = Params{
	Name:         "vtctest",
	PowLimit:     vertcoinPowLimit,
	PowLimitBits: 0x1e0fffff,
	PoWSchedule: []PoWEpoch{
		{StartHeight: 0, Recipe: hashchain.Lyra2REv2Recipe},
	},
}

// ==================== VertcoinRegTestnet

var VertcoinRegTestParams = Params{
	Name:         "vtcreg",
	PowLimit:     regressionPowLimit,
	PowLimitBits: 0x207fffff,
	PoWSchedule:  vertcoinSchedule,

	GenesisHeader: newHeaderFromStr("01000000000000000000000000000000000000000000000000000000" +
		"0000000000000000e72301fc49323ee151cf1048230f032ca589753ba7086222" +
		"a5c023e3a08cf34adae5494dffff7f2002000000"),
	GenesisHash: newHashFromStr("2399c0b047ebbbd1650d66867206c97317027b1a" +
		"1932bc6fc17ce833dc4a85ce"),
}
