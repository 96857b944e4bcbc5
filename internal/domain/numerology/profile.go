package numerology

// Band is one of the three age ranges that carry their own line values.
type Band string

const (
	Band20To40 Band = "20_40"
	Band40To60 Band = "40_60"
	Band60Plus Band = "60_plus"
)

// Bands lists the bands youngest first.
var Bands = []Band{Band20To40, Band40To60, Band60Plus}

// BandForAge selects the band used for age-banded parameters.
func BandForAge(age int) Band {
	switch {
	case age >= 60:
		return Band60Plus
	case age >= 40:
		return Band40To60
	default:
		return Band20To40
	}
}

// Line holds one value per band.
type Line struct {
	From20To40 int `json:"20_40"`
	From40To60 int `json:"40_60"`
	From60Plus int `json:"60_plus"`
}

// At returns the value of the given band. ok is false for an unknown band.
func (l Line) At(b Band) (value int, ok bool) {
	switch b {
	case Band20To40:
		return l.From20To40, true
	case Band40To60:
		return l.From40To60, true
	case Band60Plus:
		return l.From60Plus, true
	}
	return 0, false
}

// Profile is the full parameter set derived from one birth date
// ("Цветок Мудрости"). Every value lies in [1, MaxValue].
type Profile struct {
	I   int `json:"I"`
	II  int `json:"II"`
	III int `json:"III"`
	IV  int `json:"IV"`
	V   int `json:"V"`

	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`

	Spirit     Line `json:"spirit_line"`
	Matter     Line `json:"matter_line"`
	Connection Line `json:"connection"`
}

// Derive computes the profile of b. Later steps consume earlier results, so
// the order below is significant.
func Derive(b BirthDate) Profile {
	var p Profile

	p.I = Reduce(b.Day)
	p.II = b.Month
	p.III = Reduce(DigitSum(b.Year))
	p.IV = Reduce(p.I + p.II + p.III)
	p.V = Reduce(p.I + p.II + p.III + p.IV)

	p.A = Reduce(p.I + p.V)
	p.B = Reduce(p.II + p.V)
	p.C = Reduce(p.III + p.V)
	p.D = Reduce(p.IV + p.V)

	p.Spirit = Line{
		From20To40: Reduce(p.II + p.IV),
		From40To60: Reduce(p.II + p.B + p.D + p.IV),
		From60Plus: Reduce(p.II + p.B + p.V + p.D + p.IV),
	}
	p.Matter = Line{
		From20To40: Reduce(p.I + p.III),
		From40To60: Reduce(p.I + p.A + p.C + p.III),
		From60Plus: Reduce(p.I + p.A + p.V + p.C + p.III),
	}
	p.Connection = Line{
		From20To40: Reduce(p.Spirit.From20To40 + p.Matter.From20To40),
		From40To60: Reduce(p.Spirit.From40To60 + p.Matter.From40To60),
		From60Plus: Reduce(p.Spirit.From60Plus + p.Matter.From60Plus),
	}
	return p
}

// Scalar returns the value of a scalar parameter.
func (p Profile) Scalar(k Key) (int, bool) {
	switch k {
	case KeyI:
		return p.I, true
	case KeyII:
		return p.II, true
	case KeyIII:
		return p.III, true
	case KeyIV:
		return p.IV, true
	case KeyV:
		return p.V, true
	case KeyA:
		return p.A, true
	case KeyB:
		return p.B, true
	case KeyC:
		return p.C, true
	case KeyD:
		return p.D, true
	}
	return 0, false
}

// Line returns the banded family named by k.
func (p Profile) Line(k Key) (Line, bool) {
	switch k {
	case KeySpiritLine:
		return p.Spirit, true
	case KeyMatterLine:
		return p.Matter, true
	case KeyConnection:
		return p.Connection, true
	}
	return Line{}, false
}

// Resolve returns the value of k, picking band b for line families.
func (p Profile) Resolve(k Key, b Band) (int, bool) {
	if k.IsBanded() {
		line, ok := p.Line(k)
		if !ok {
			return 0, false
		}
		return line.At(b)
	}
	return p.Scalar(k)
}

// Values returns every field of the profile, scalars first then each line
// band by band.
func (p Profile) Values() []int {
	values := []int{p.I, p.II, p.III, p.IV, p.V, p.A, p.B, p.C, p.D}
	for _, l := range []Line{p.Spirit, p.Matter, p.Connection} {
		values = append(values, l.From20To40, l.From40To60, l.From60Plus)
	}
	return values
}
