package domain

type Brand string

const (
	BrandApple   Brand = "Apple"
	BrandSamsung Brand = "Samsung"
	BrandWeebur  Brand = "Weebur"
)

var brands = []Brand{BrandApple, BrandSamsung, BrandWeebur}

// Brands returns the selectable brands in form order.
func Brands() []Brand {
	out := make([]Brand, len(brands))
	copy(out, brands)
	return out
}

// ParseBrand matches s exactly against the known brands.
func ParseBrand(s string) (Brand, bool) {
	for _, b := range brands {
		if string(b) == s {
			return b, true
		}
	}
	return "", false
}

func (b Brand) String() string { return string(b) }
