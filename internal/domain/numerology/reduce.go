package numerology

// MaxValue is the upper bound of every parameter in a Profile.
const MaxValue = 12

// DigitSum returns the sum of the base-10 digits of n.
func DigitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// Reduce folds n by repeated digit sums until it is at most MaxValue.
// Values already in range (including 0) are returned unchanged.
func Reduce(n int) int {
	for n > MaxValue {
		n = DigitSum(n)
	}
	return n
}
