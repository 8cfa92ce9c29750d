package devapi

// product is the wire form. Price is loose: some entries
// carry a formatted string the way the production catalog does.
type product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       any    `json:"price"`
	Image       string `json:"image"`
	CategoryID  int    `json:"category_id"`
	Description string `json:"description,omitempty"`
}

const (
	CategoryPhones      = 1
	CategoryAccessories = 2
)

func seedProducts() []product {
	return []product{
		{ID: 1, Name: "iPhone 15 Pro Max", Price: 41990000, Image: "https://cdn.shopfront.dev/iphone-15-pro-max.png", CategoryID: CategoryPhones, Description: "New, full box"},
		{ID: 2, Name: "iPhone 15 Pro", Price: "28.990.000 ₫", Image: "https://cdn.shopfront.dev/iphone-15-pro.png", CategoryID: CategoryPhones},
		{ID: 3, Name: "iPhone 15", Price: "22,490,000", Image: "https://cdn.shopfront.dev/iphone-15.png", CategoryID: CategoryPhones},
		{ID: 4, Name: "iPhone 14", Price: 17990000, Image: "https://cdn.shopfront.dev/iphone-14.png", CategoryID: CategoryPhones},
		{ID: 5, Name: "iPhone 13", Price: "13.690.000", Image: "https://cdn.shopfront.dev/iphone-13.png", CategoryID: CategoryPhones},
		{ID: 10, Name: "AirPods Pro 2", Price: 5990000, Image: "https://cdn.shopfront.dev/airpods-pro-2.png", CategoryID: CategoryAccessories},
		{ID: 11, Name: "MagSafe Charger", Price: "1.090.000 ₫", Image: "https://cdn.shopfront.dev/magsafe.png", CategoryID: CategoryAccessories},
	}
}

// SeedUsers registers the demo accounts.
func SeedUsers(d *Directory) error {
	if _, err := d.Add("demo", "demo@shopfront.dev", "Demo@123"); err != nil {
		return err
	}
	_, err := d.Add("admin", "admin@shopfront.dev", "Admin@123")
	return err
}
