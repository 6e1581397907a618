package app

// ProductList is a Catalog backed by an in-memory product list.
type ProductList []Product

func (l ProductList) Lookup(id string) (Product, bool) {
	for _, p := range l {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
