package ui

import (
	"product-catalog/internal/client"
)

// ProductForm holds raw form input; Price is parsed on submit.
type ProductForm struct {
	Name  string
	Price string
}

// State is the view state. Transitions return a new State and never modify
// the receiver's Products slice.
type State struct {
	Products  []client.Product
	NewForm   ProductForm
	EditingID int64 // zero when no row is in edit mode
	EditForm  ProductForm
}

func (s State) Editing() bool {
	return s.EditingID != 0
}

// StartEdit puts row id into edit mode with the form pre-populated from it.
// Unknown ids leave the state as is.
func (s State) StartEdit(id int64) State {
	for _, p := range s.Products {
		if p.ID == id {
			s.EditingID = id
			s.EditForm = ProductForm{Name: p.Name, Price: p.Price.String()}
			return s
		}
	}
	return s
}

func (s State) CancelEdit() State {
	s.EditingID = 0
	s.EditForm = ProductForm{}
	return s
}

func (s State) WithNewForm(form ProductForm) State {
	s.NewForm = form
	return s
}

func (s State) WithEditForm(form ProductForm) State {
	s.EditForm = form
	return s
}

func (s State) WithProducts(products []client.Product) State {
	s.Products = append([]client.Product(nil), products...)
	return s
}
