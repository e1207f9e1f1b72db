package domain

// Category classifies a catalog product.
type Category string

const (
	CategoryPlan      Category = "plan"
	CategoryDevice    Category = "device"
	CategoryAddon     Category = "addon"
	CategoryAccessory Category = "accessory"
)

// Valid reports whether the category is one of the four known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryPlan, CategoryDevice, CategoryAddon, CategoryAccessory:
		return true
	}
	return false
}
