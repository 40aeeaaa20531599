// Package menu filtra el árbol estático de módulos del dashboard según los roles,
// permisos y módulos del usuario.
package menu

import "github.com/jhoicas/freshbreeze-api/internal/domain/entity"

// Node elemento del menú. Roles, Permissions y Module son requisitos alternativos:
// basta con cumplir uno de ellos.
type Node struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Path        string   `json:"path,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Roles       []string `json:"-"`
	Permissions []string `json:"-"`
	Module      string   `json:"-"`
	Children    []Node   `json:"children,omitempty"`
}

// Subject lo que se sabe del usuario al filtrar.
type Subject struct {
	Roles       []string
	Permissions []string
	Modules     []string
}

// IsAdmin informa si el sujeto tiene el rol admin.
func (s Subject) IsAdmin() bool {
	return entity.Roles(s.Roles).IsAdmin()
}

func (n Node) restricted() bool {
	return len(n.Roles) > 0 || len(n.Permissions) > 0 || n.Module != ""
}

func (n Node) allows(s Subject) bool {
	if !n.restricted() || s.IsAdmin() {
		return true
	}
	if entity.Roles(s.Roles).HasAny(n.Roles...) {
		return true
	}
	for _, p := range n.Permissions {
		if contains(s.Permissions, p) {
			return true
		}
	}
	return n.Module != "" && contains(s.Modules, n.Module)
}

// Filter devuelve una copia del árbol con solo los nodos accesibles, en el orden original.
// Un nodo se conserva si lo permite su propio requisito o si le queda algún hijo visible.
// No modifica nodes.
func Filter(nodes []Node, s Subject) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		var children []Node
		if len(n.Children) > 0 {
			children = Filter(n.Children, s)
		}
		if !n.allows(s) && len(children) == 0 {
			continue
		}
		kept := n
		kept.Roles = cloneStrings(n.Roles)
		kept.Permissions = cloneStrings(n.Permissions)
		kept.Children = nil
		if len(children) > 0 {
			kept.Children = children
		}
		out = append(out, kept)
	}
	return out
}

// Keys lista las claves del árbol en profundidad (útil para logs y tests).
func Keys(nodes []Node) []string {
	var keys []string
	for _, n := range nodes {
		keys = append(keys, n.Key)
		keys = append(keys, Keys(n.Children)...)
	}
	return keys
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}
