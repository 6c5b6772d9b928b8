package query

import (
	"fmt"
	"strconv"

	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
)

const (
	PageKey = "page"
	TakeKey = "take"
)

// Mode selecciona la estrategia de paginación.
type Mode int

const (
	ModeCursor Mode = iota
	ModeOffset
)

func (m Mode) String() string {
	if m == ModeOffset {
		return "offset"
	}
	return "cursor"
}

// Options son los límites de tamaño de página configurados por el llamador.
type Options struct {
	DefaultTake int
	MaxTake     int
}

// DefaultOptions replica los valores por defecto de la configuración.
var DefaultOptions = Options{DefaultTake: 20, MaxTake: 100}

// PageRequest es una petición de listado ya validada.
type PageRequest struct {
	Mode Mode
	Page int // solo en ModeOffset
	Take int
	Spec Spec
	// Params es la query string original; se usa para reconstruir el enlace next.
	Params map[string]string
}

// ParseRequest decodifica y valida los parámetros crudos. La presencia de
// "page" selecciona la paginación por offset.
func ParseRequest(table FieldTable, params map[string]string, opts Options) (PageRequest, error) {
	tokens, err := DecodeKeys(params)
	if err != nil {
		return PageRequest{}, err
	}
	spec, err := Build(table, tokens)
	if err != nil {
		return PageRequest{}, err
	}

	take := opts.DefaultTake
	if take <= 0 {
		take = DefaultOptions.DefaultTake
	}
	if raw, ok := params[TakeKey]; ok {
		take, err = positiveInt(TakeKey, raw)
		if err != nil {
			return PageRequest{}, err
		}
	}
	if opts.MaxTake > 0 && take > opts.MaxTake {
		take = opts.MaxTake
	}

	req := PageRequest{Mode: ModeCursor, Take: take, Spec: spec, Params: params}
	if raw, ok := params[PageKey]; ok {
		page, err := positiveInt(PageKey, raw)
		if err != nil {
			return PageRequest{}, err
		}
		req.Mode = ModeOffset
		req.Page = page
	}
	return req, nil
}

// Scope devuelve una copia con condiciones añadidas que no viajan en el
// enlace next, como el padre tomado de la ruta.
func (r PageRequest) Scope(criteria ...sharedDomain.Criteria) PageRequest {
	r.Spec.Filters = r.Spec.Filters.With(criteria...)
	return r
}

func positiveInt(key, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %q must be a positive integer, got %q", ErrInvalidPageParameter, key, raw)
	}
	return v, nil
}
