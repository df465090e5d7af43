// Package reward evaluates the named reward curves a RewardFund is
// configured with and carries the cashout/curation distribution engine
// housekeeping drives at end-of-block.
package reward

import "github.com/holiman/uint256"

// Curve names a RewardFund's author_reward_curve / curation_reward_curve
// field can hold.
const (
	CurveQuadratic = "quadratic"
	CurveLinear    = "linear"
	CurvePower     = "power"
)

// maxU128 is the saturation ceiling every curve's output and the
// recent_claims accumulator it feeds are clamped to.
var maxU128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))

// Evaluate maps rshares through the named curve, weighted by
// contentConstant, producing the claim weight a cashout share or a
// curation-weight delta is proportional to. Negative or zero rshares
// contribute nothing. Unrecognized curve names fall back to quadratic,
// the curve both reward funds ship with at genesis.
func Evaluate(rshares int64, curveName string, contentConstant int64) *uint256.Int {
	if rshares <= 0 {
		return uint256.NewInt(0)
	}
	r := uint256.NewInt(uint64(rshares))
	var result *uint256.Int
	switch curveName {
	case CurveLinear:
		result = r
	case CurvePower:
		// power_factor/10000 fractional exponent realized as a scaled
		// linear term, per the lookup-table note: content_constant carries
		// the power_factor for this curve.
		factor := uint256.NewInt(uint64(contentConstant))
		result = new(uint256.Int).Mul(r, factor)
		result.Div(result, uint256.NewInt(10_000))
	default:
		s := uint256.NewInt(uint64(contentConstant) / 2)
		sum := new(uint256.Int).Add(r, s)
		sq := new(uint256.Int).Mul(sum, sum)
		s2 := new(uint256.Int).Mul(s, s)
		if sq.Lt(s2) {
			result = uint256.NewInt(0)
		} else {
			result = new(uint256.Int).Sub(sq, s2)
		}
	}
	if result.Gt(maxU128) {
		return new(uint256.Int).Set(maxU128)
	}
	return result
}
