package piecewise

// Both built-in tables share the same 51-point domain: -10.0 to +10.0 in
// Q15, five segments per unit of 2.0. An offset from the lower edge buckets
// as (5*offset)>>16.
const (
	tablePoints = 51
	bucketMul   = 5
	bucketShift = 16
	slopeShift  = 15
)

// histEdges are the Q15 segment start points.
var histEdges = [tablePoints]int32{
	-327680, -314573, -301466, -288359, -275252, -262144, -249037, -235930, -222823, -209716,
	-196608, -183501, -170394, -157287, -144180, -131072, -117965, -104858, -91751, -78644,
	-65536, -52429, -39322, -26215, -13108, 0, 13107, 26214, 39321, 52428,
	65536, 78643, 91750, 104857, 117964, 131072, 144179, 157286, 170393, 183500,
	196608, 209715, 222822, 235929, 249036, 262144, 275251, 288358, 301465, 314572,
	327680,
}

// logisticSlopes are the per-segment slopes of the logistic CDF,
// floor(2.5*(Y[i+1]-Y[i])) for the 13107-wide segments.
var logisticSlopes = [tablePoints]uint16{
	2, 7, 7, 12, 17, 27, 40, 60, 90, 132,
	197, 297, 437, 650, 960, 1410, 2060, 2975, 4235, 5902,
	7992, 10402, 12867, 14957, 16170, 16167, 14955, 12870, 10402, 7992,
	5902, 4235, 2975, 2060, 1410, 960, 650, 437, 297, 197,
	132, 90, 60, 40, 27, 17, 12, 7, 7, 2,
	0,
}

// logisticY is 65535/(1+exp(-x)) at each edge, rounded to nearest. These
// are computed values, not the breakpoints of the fixed-point iSAC codec.
var logisticY = [tablePoints]int32{
	3, 4, 7, 10, 15, 22, 33, 49, 73, 109,
	162, 241, 360, 535, 795, 1179, 1743, 2567, 3757, 5451,
	7812, 11009, 15170, 20317, 26300, 32768, 39235, 45217, 50365, 54526,
	57723, 60084, 61778, 62968, 63792, 64356, 64740, 65000, 65175, 65294,
	65373, 65426, 65462, 65486, 65502, 65513, 65520, 65525, 65528, 65531,
	65532,
}

// uniformSlopes are the per-segment slopes of the flat CDF.
var uniformSlopes = [tablePoints]uint16{
	3275, 3277, 3277, 3275, 3277, 3277, 3275, 3277, 3277, 3277,
	3275, 3277, 3277, 3275, 3277, 3277, 3275, 3277, 3277, 3277,
	3275, 3277, 3277, 3275, 3277, 3277, 3275, 3277, 3277, 3277,
	3275, 3277, 3277, 3275, 3277, 3277, 3275, 3277, 3277, 3277,
	3275, 3277, 3277, 3275, 3277, 3277, 3275, 3277, 3277, 3277,
	0,
}

// uniformY rises linearly from 0 to 65535 across the domain.
var uniformY = [tablePoints]int32{
	0, 1310, 2621, 3932, 5242, 6553, 7864, 9174, 10485, 11796,
	13107, 14417, 15728, 17039, 18349, 19660, 20971, 22281, 23592, 24903,
	26214, 27524, 28835, 30146, 31456, 32767, 34078, 35388, 36699, 38010,
	39321, 40631, 41942, 43253, 44563, 45874, 47185, 48495, 49806, 51117,
	52428, 53738, 55049, 56360, 57670, 58981, 60292, 61602, 62913, 64224,
	65535,
}

// Logistic returns a copy of the default 51-point logistic CDF table used
// by the logistic sample coder. The table is sampled from the logistic
// function, so streams coded with it do not interoperate with other iSAC
// implementations. Supply the codec's own breakpoints through NewTable and
// SetModel where that matters.
func Logistic() *Table {
	return &Table{
		Edges:       append([]int32(nil), histEdges[:]...),
		Slopes:      append([]uint16(nil), logisticSlopes[:]...),
		Y:           append([]int32(nil), logisticY[:]...),
		BucketMul:   bucketMul,
		BucketShift: bucketShift,
		SlopeShift:  slopeShift,
	}
}

// Uniform returns a copy of a flat 51-point CDF over the logistic table's
// domain. Every interior argument range of equal width maps to an equal
// share of the CDF.
func Uniform() *Table {
	return &Table{
		Edges:       append([]int32(nil), histEdges[:]...),
		Slopes:      append([]uint16(nil), uniformSlopes[:]...),
		Y:           append([]int32(nil), uniformY[:]...),
		BucketMul:   bucketMul,
		BucketShift: bucketShift,
		SlopeShift:  slopeShift,
	}
}
