// Package report implementa el núcleo puro de analítica de ventas de
// PharmaTrack: el agregador de insights a 30 días y el reporte de historial
// por rango de fechas. Todas las funciones son puras sobre snapshots en
// memoria; no hacen I/O y nunca mutan sus entradas.
package report

import "github.com/pharmatrack/pharmatrack-api/internal/domain/entity"

// ResolutionKind clasifica cómo se resolvió el producto de una orden
// contra el catálogo vigente.
type ResolutionKind int

const (
	// Resolved el productId de la orden existe en el catálogo actual.
	Resolved ResolutionKind = iota
	// ResolvedByName el productId es obsoleto pero el nombre coincide con un
	// producto vigente (el producto fue recreado o la orden es antigua).
	ResolvedByName
	// Unresolvable el producto fue eliminado del catálogo; la orden no aporta
	// cantidades a la analítica.
	Unresolvable
)

// Resolution resultado de resolver la orden contra el catálogo.
// ProductID solo es válido cuando Kind != Unresolvable.
type Resolution struct {
	Kind      ResolutionKind
	ProductID string
}

// catalog índices de consulta construidos una sola vez por agregación.
type catalog struct {
	nameByID map[string]string
	byID     map[string]entity.Product
	idByName map[string]string
}

func buildCatalog(products []entity.Product) catalog {
	c := catalog{
		nameByID: make(map[string]string, len(products)),
		byID:     make(map[string]entity.Product, len(products)),
		idByName: make(map[string]string, len(products)),
	}
	for _, p := range products {
		c.nameByID[p.ID] = p.Name
		c.byID[p.ID] = p
		if p.Name != "" {
			c.idByName[p.Name] = p.ID
		}
	}
	return c
}

// resolve aplica la cadena de resolución id → nombre → irresoluble.
// La orden de un producto eliminado se descarta, no aborta la agregación.
func (c catalog) resolve(o entity.Order) Resolution {
	if o.ProductID != "" {
		if _, ok := c.byID[o.ProductID]; ok {
			return Resolution{Kind: Resolved, ProductID: o.ProductID}
		}
	}
	if o.Product != "" {
		if id, ok := c.idByName[o.Product]; ok {
			return Resolution{Kind: ResolvedByName, ProductID: id}
		}
	}
	return Resolution{Kind: Unresolvable}
}

// displayName devuelve el nombre vigente del producto, o el id crudo si el
// catálogo no pudo cargarse (degradación del fetch de productos).
func (c catalog) displayName(productID string) string {
	if name, ok := c.nameByID[productID]; ok && name != "" {
		return name
	}
	return productID
}
