package pathgen

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

var ErrSyntax = errors.New("pathgen: invalid path data")

// Command is one absolute path segment. Args holds control and end points
// as x, y pairs: none for 'Z', one pair for 'M' and 'L', two for 'Q',
// three for 'C'.
type Command struct {
	Op   byte
	Args []float64
}

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int, error) {
	i := skipCommaWhitespace(path)
	f, n := strconv.ParseFloat(path[i:])
	if n == 0 {
		return 0, 0, ErrSyntax
	}
	return f, i + n, nil
}

var argCount = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'Q': 4, 'T': 2, 'C': 6, 'S': 4, 'Z': 0,
}

// Parse converts path data into absolute commands. Relative commands,
// H/V lines and the smooth Q/C shorthands are resolved, so the result only
// contains M, L, Q, C and Z.
func Parse(d string) ([]Command, error) {
	path := []byte(d)
	var cmds []Command

	var prev byte
	var x, y, x0, y0 float64
	var cpx, cpy float64 // last control point, for T and S

	i := skipCommaWhitespace(path)
	for i < len(path) {
		op := prev
		explicit := false
		if c := path[i]; (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			op = c
			explicit = true
			i++
		} else if prev == 0 {
			return nil, fmt.Errorf("%w: expected command at %d", ErrSyntax, i)
		}

		upper := op &^ 0x20
		n, ok := argCount[upper]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported command %q", ErrSyntax, op)
		}
		if n == 0 && !explicit {
			return nil, fmt.Errorf("%w: unexpected number at %d", ErrSyntax, i)
		}
		rel := op != upper

		args := make([]float64, n)
		for k := range args {
			v, m, err := parseNum(path[i:])
			if err != nil {
				return nil, fmt.Errorf("%w: bad number at %d", ErrSyntax, i)
			}
			args[k] = v
			i += m
		}
		if rel {
			for k := range args {
				switch {
				case upper == 'H':
					args[k] += x
				case upper == 'V':
					args[k] += y
				case k%2 == 0:
					args[k] += x
				default:
					args[k] += y
				}
			}
		}

		switch upper {
		case 'M':
			cmds = append(cmds, Command{'M', args})
			x, y, x0, y0 = args[0], args[1], args[0], args[1]
			cpx, cpy = x, y
			// further pairs after a moveto are implicit linetos
			if rel {
				op = 'l'
			} else {
				op = 'L'
			}
		case 'L', 'H', 'V':
			nx, ny := x, y
			switch upper {
			case 'L':
				nx, ny = args[0], args[1]
			case 'H':
				nx = args[0]
			case 'V':
				ny = args[0]
			}
			cmds = append(cmds, Command{'L', []float64{nx, ny}})
			x, y = nx, ny
			cpx, cpy = x, y
		case 'Q':
			cmds = append(cmds, Command{'Q', args})
			cpx, cpy = args[0], args[1]
			x, y = args[2], args[3]
		case 'T':
			qx, qy := x, y
			if p := prev &^ 0x20; p == 'Q' || p == 'T' {
				qx, qy = 2*x-cpx, 2*y-cpy
			}
			cmds = append(cmds, Command{'Q', []float64{qx, qy, args[0], args[1]}})
			cpx, cpy = qx, qy
			x, y = args[0], args[1]
		case 'C':
			cmds = append(cmds, Command{'C', args})
			cpx, cpy = args[2], args[3]
			x, y = args[4], args[5]
		case 'S':
			c1x, c1y := x, y
			if p := prev &^ 0x20; p == 'C' || p == 'S' {
				c1x, c1y = 2*x-cpx, 2*y-cpy
			}
			cmds = append(cmds, Command{'C', []float64{c1x, c1y, args[0], args[1], args[2], args[3]}})
			cpx, cpy = args[0], args[1]
			x, y = args[2], args[3]
		case 'Z':
			cmds = append(cmds, Command{'Z', nil})
			x, y = x0, y0
			cpx, cpy = x, y
		}
		prev = op
		i += skipCommaWhitespace(path[i:])
	}
	return cmds, nil
}
