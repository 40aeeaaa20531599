package tenant

import (
	"net"
	"net/url"
	"strings"
)

// Input datos de la petición a partir de los cuales se deriva el subdominio.
type Input struct {
	Host     string     // Host tal cual llega (puede incluir puerto)
	Query    url.Values // parámetros de query
	Fragment string     // fragmento del cliente (ej. "tenant=acme" o "/shop?tenant=acme")
}

// overrideParams parámetros aceptados en hosts de desarrollo, en orden de prioridad.
var overrideParams = []string{"tenant", "subdomain"}

// Subdomain deriva el slug candidato para el host, sin consultar nada.
func (r *Resolver) Subdomain(in Input) string {
	host := normalizeHost(in.Host)
	if isLocalHost(host) {
		if v := firstParam(in.Query); v != "" {
			return v
		}
		if v := firstParam(parseFragment(in.Fragment)); v != "" {
			return v
		}
		return r.cfg.DefaultSlug
	}

	if root := r.cfg.RootDomain; root != "" {
		switch {
		case host == root, host == "www."+root:
			return r.cfg.DefaultSlug
		case strings.HasSuffix(host, "."+root):
			prefix := strings.TrimSuffix(host, "."+root)
			first := strings.SplitN(prefix, ".", 2)[0]
			if first == "www" {
				return r.cfg.DefaultSlug
			}
			return first
		}
	}

	labels := strings.Split(host, ".")
	if len(labels) > 2 && labels[0] != "www" && labels[0] != "" {
		return labels[0]
	}
	return r.cfg.DefaultSlug
}

func normalizeHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if host, _, err := net.SplitHostPort(h); err == nil {
		h = host
	}
	return strings.TrimSuffix(strings.Trim(h, "[]"), ".")
}

func isLocalHost(h string) bool {
	if h == "" || h == "localhost" || strings.HasSuffix(h, ".localhost") {
		return true
	}
	return net.ParseIP(h) != nil
}

func firstParam(q url.Values) string {
	for _, k := range overrideParams {
		if v := strings.ToLower(strings.TrimSpace(q.Get(k))); v != "" {
			return v
		}
	}
	return ""
}

func parseFragment(f string) url.Values {
	f = strings.TrimPrefix(f, "#")
	if i := strings.Index(f, "?"); i >= 0 {
		f = f[i+1:]
	}
	q, err := url.ParseQuery(f)
	if err != nil {
		return nil
	}
	return q
}
