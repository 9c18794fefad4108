// Package safe provides bounded-allocation helpers for payload handling and
// numeric formatting.
//
// Two recurring defect classes motivate this package: string padding whose
// computed repeat count underflows or explodes (allocation abort), and byte
// ranges computed from decoded length fields that slice past the buffer
// (bounds panic). Every helper here clamps its inputs before allocating or
// slicing.
package safe

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// MaxPadding is the upper bound for any computed filler repetition.
// Legitimate decimal formatting never needs more (uint8 decimals cap at 255
// digits total, and token decimals in practice stay below 30).
const MaxPadding = 100

// ErrRangeOutOfBounds is returned by Subrange when a computed range does not
// fit the buffer.
var ErrRangeOutOfBounds = errors.New("computed range exceeds buffer bounds")

// RepeatBounded repeats fill count times, clamping count to [0, max].
// A negative count (an underflowed subtraction upstream) is treated as zero
// rather than wrapping into a huge allocation.
func RepeatBounded(fill string, count int, max int) string {
	if count < 0 {
		count = 0
	}
	if max < 0 {
		max = 0
	}
	if count > max {
		count = max
	}
	return strings.Repeat(fill, count)
}

// Subrange returns buf[start:end] after validating the range.
// start is clamped to [0, len(buf)]; an end before start or past the buffer
// is an error, never a slice panic or a silent truncation.
func Subrange(buf []byte, start int, end int) ([]byte, error) {
	if start < 0 {
		start = 0
	}
	if start > len(buf) {
		return nil, fmt.Errorf("%w: start %d, buffer %d", ErrRangeOutOfBounds, start, len(buf))
	}
	if end < start || end > len(buf) {
		return nil, fmt.Errorf("%w: range [%d:%d], buffer %d", ErrRangeOutOfBounds, start, end, len(buf))
	}
	return buf[start:end], nil
}

// TrimRightZeros strips trailing zero bytes.
// Fixed-width (32-byte word) string encodings pad with NULs on the right;
// the padding is not part of the value.
func TrimRightZeros(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}

// HexPreview renders the first n bytes of b as hex for log output,
// with an ellipsis when b is longer. Never allocates proportionally to b.
func HexPreview(b []byte, n int) string {
	if n < 0 {
		n = 0
	}
	if len(b) <= n {
		return hexutil.Encode(b)
	}
	return hexutil.Encode(b[:n]) + "..."
}

// FormatUnits renders amount as a decimal string with the given number of
// fractional digits, e.g. FormatUnits(123456789, 6) == "123.456789".
// The zero-padding of the fractional part is bounded by MaxPadding.
func FormatUnits(amount *big.Int, decimals uint8) string {
	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)

	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(amount, divisor, frac)
	frac.Abs(frac)

	if decimals == 0 {
		return whole.String()
	}

	fracStr := frac.String()
	padding := RepeatBounded("0", int(decimals)-len(fracStr), MaxPadding)
	return whole.String() + "." + padding + fracStr
}
