package fluidtype

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const maxPrecision = 100

// exactDigits is enough fractional digits to print any float64 exactly
const exactDigits = 1100

// toFixed formats x with a fixed number of decimals. The exact binary value is
// rounded with ties away from zero, and negative zero prints as zero, so
// 1.005 gives "1.00" and 0.125 gives "0.13".
func toFixed(x float64, digits int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	if x == 0 {
		x = 0
	}

	neg := x < 0
	if neg {
		x = -x
	}

	exact := new(big.Float).SetFloat64(x).Text('f', exactDigits)
	intPart, frac, _ := strings.Cut(exact, ".")
	if len(frac) < digits+1 {
		frac += strings.Repeat("0", digits+1-len(frac))
	}

	buf := []byte(intPart + frac[:digits])
	if frac[digits] >= '5' {
		i := len(buf) - 1
		for ; i >= 0; i-- {
			if buf[i] == '9' {
				buf[i] = '0'
				continue
			}
			buf[i]++
			break
		}
		if i < 0 {
			buf = append([]byte{'1'}, buf...)
		}
	}

	s := string(buf)
	split := len(s) - digits
	out := s[:split]
	if digits > 0 {
		out += "." + s[split:]
	}
	if neg {
		out = "-" + out
	}
	return out
}
