package model

// Category groups assets. ParentID may be empty, dangling or cyclic.
type Category struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	ParentID    string `json:"parentId,omitempty"`
	Description string `json:"description,omitempty"`
}

// Key returns the category ID.
func (c Category) Key() string { return c.ID }

// CategoryPatch holds the fields to change on a category.
type CategoryPatch struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply returns a copy of c with the patch applied.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Code != nil {
		c.Code = *p.Code
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ParentID != nil {
		c.ParentID = *p.ParentID
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	return c
}

// Supplier is a vendor assets are bought from.
type Supplier struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	ContactName string `json:"contactName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	TaxCode     string `json:"taxCode,omitempty"`
}

// Key returns the supplier ID.
func (s Supplier) Key() string { return s.ID }

// SupplierPatch holds the fields to change on a supplier.
type SupplierPatch struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	ContactName *string `json:"contactName,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	TaxCode     *string `json:"taxCode,omitempty"`
}

// Apply returns a copy of s with the patch applied.
func (p SupplierPatch) Apply(s Supplier) Supplier {
	if p.Code != nil {
		s.Code = *p.Code
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.ContactName != nil {
		s.ContactName = *p.ContactName
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Address != nil {
		s.Address = *p.Address
	}
	if p.TaxCode != nil {
		s.TaxCode = *p.TaxCode
	}
	return s
}

// Location is a place assets are kept. ParentID forms an unchecked hierarchy.
type Location struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	ParentID    string `json:"parentId,omitempty"`
	Description string `json:"description,omitempty"`
}

// Key returns the location ID.
func (l Location) Key() string { return l.ID }

// LocationPatch holds the fields to change on a location.
type LocationPatch struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply returns a copy of l with the patch applied.
func (p LocationPatch) Apply(l Location) Location {
	if p.Code != nil {
		l.Code = *p.Code
	}
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.ParentID != nil {
		l.ParentID = *p.ParentID
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	return l
}
