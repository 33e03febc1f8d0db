package eastmoney

import (
	"strings"
)

// EastMoney market prefixes used in secids
const (
	marketShenzhen = "0"
	marketShanghai = "1"
)

// indexSecID resolves a benchmark index code to an EastMoney secid.
// The 399xxx family lives on the Shenzhen feed; the other benchmark
// codes (000001, 000016, 000300, 000688) are Shanghai.
func indexSecID(code string) string {
	if strings.HasPrefix(code, "399") {
		return marketShenzhen + "." + code
	}
	return marketShanghai + "." + code
}

// stockSecID resolves an equity code to an EastMoney secid. Shanghai
// listings start with 6 (688 STAR board included) or 9; Shenzhen and
// Beijing codes use the 0 feed.
func stockSecID(code string) string {
	if strings.HasPrefix(code, "6") || strings.HasPrefix(code, "9") {
		return marketShanghai + "." + code
	}
	return marketShenzhen + "." + code
}
