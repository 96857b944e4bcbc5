package numerology

// Key names a parameter slot of a Profile: a scalar or a banded family.
type Key string

const (
	KeyI   Key = "I"
	KeyII  Key = "II"
	KeyIII Key = "III"
	KeyIV  Key = "IV"
	KeyV   Key = "V"
	KeyA   Key = "A"
	KeyB   Key = "B"
	KeyC   Key = "C"
	KeyD   Key = "D"

	KeySpiritLine Key = "spirit_line"
	KeyMatterLine Key = "matter_line"
	KeyConnection Key = "connection"
)

// ScalarKeys lists the scalar parameters in display order.
var ScalarKeys = []Key{KeyI, KeyII, KeyIII, KeyIV, KeyV, KeyA, KeyB, KeyC, KeyD}

// LineKeys lists the banded families in display order.
var LineKeys = []Key{KeySpiritLine, KeyMatterLine, KeyConnection}

// IsBanded reports whether k is one of the age-banded families.
func (k Key) IsBanded() bool {
	return k == KeySpiritLine || k == KeyMatterLine || k == KeyConnection
}
