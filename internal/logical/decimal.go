package logical

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/primait/avrogen/internal/schema"
)

var one = big.NewInt(1)

// Width returns the byte width of a bytes-backed decimal of the given
// precision: ceil(log2(10^precision) / 8).
func Width(precision int) int {
	if precision <= 0 {
		return 0
	}
	// 10^p is never a power of two, so ceil(log2(10^p)) == bitlen(10^p).
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil)
	return (p.BitLen() + 7) / 8
}

// MaxUnscaled returns the largest unscaled magnitude a bytes-backed decimal
// of the given precision can carry: 10^precision - 1, capped by the signed
// range of Width(precision) bytes.
func MaxUnscaled(precision int) *big.Int {
	if precision <= 0 {
		return new(big.Int)
	}
	digits := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil)
	digits.Sub(digits, one)
	signed := new(big.Int).Lsh(one, uint(Width(precision)*8-1))
	signed.Sub(signed, one)
	if signed.Cmp(digits) < 0 {
		return signed
	}
	return digits
}

// decimalBytes packs round(v * 10^scale) into a fixed-width big-endian
// two's complement integer.
type decimalBytes struct {
	precision int
	scale     int
}

func (c decimalBytes) Encode(native any) (any, error) {
	d, ok := native.(decimal.Decimal)
	if !ok {
		return nil, errorf(schema.Decimal, "expected decimal.Decimal, got %T", native)
	}
	unscaled := d.Round(int32(c.scale)).Shift(int32(c.scale)).BigInt()
	b, ok := toTwosComplement(unscaled, Width(c.precision))
	if !ok {
		return nil, errorf(schema.Decimal, "%s does not fit precision %d scale %d", d, c.precision, c.scale)
	}
	return b, nil
}

func (c decimalBytes) Decode(intermediate any) (any, error) {
	b, ok := intermediate.([]byte)
	if !ok {
		return nil, errorf(schema.Decimal, "expected bytes, got %T", intermediate)
	}
	if len(b) == 0 {
		return nil, errorf(schema.Decimal, "empty decimal bytes")
	}
	if w := Width(c.precision); len(b) > w {
		return nil, errorf(schema.Decimal, "bad decimal width: %d bytes, precision %d allows %d", len(b), c.precision, w)
	}
	num := fromTwosComplement(b)
	return decimal.NewFromBigInt(num, -int32(c.scale)).Round(int32(c.scale)), nil
}

func (decimalBytes) Zero() any { return decimal.Zero }

// toTwosComplement renders i in exactly width bytes, reporting whether it
// fits the signed range of that width.
func toTwosComplement(i *big.Int, width int) ([]byte, bool) {
	if width <= 0 {
		return nil, false
	}
	bits := uint(width * 8)
	limit := new(big.Int).Lsh(one, bits-1)
	if i.Cmp(limit) >= 0 || i.Cmp(new(big.Int).Neg(limit)) < 0 {
		return nil, false
	}
	v := new(big.Int).Set(i)
	if v.Sign() < 0 {
		v.Add(v, new(big.Int).Lsh(one, bits))
	}
	out := make([]byte, width)
	v.FillBytes(out)
	return out, true
}

// fromTwosComplement sign-extends a big-endian two's complement integer.
func fromTwosComplement(b []byte) *big.Int {
	num := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		num.Sub(num, new(big.Int).Lsh(one, uint(len(b))*8))
	}
	return num
}

// decimalString carries the decimal as its canonical string.
type decimalString struct{}

func (decimalString) Encode(native any) (any, error) {
	d, ok := native.(decimal.Decimal)
	if !ok {
		return nil, errorf(schema.DecimalString, "expected decimal.Decimal, got %T", native)
	}
	return d.String(), nil
}

func (decimalString) Decode(intermediate any) (any, error) {
	s, ok := intermediate.(string)
	if !ok {
		return nil, errorf(schema.DecimalString, "expected string, got %T", intermediate)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errorf(schema.DecimalString, "invalid decimal %q", s)
	}
	return d, nil
}

func (decimalString) Zero() any { return decimal.Zero }
