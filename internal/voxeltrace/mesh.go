package voxeltrace

import (
	"bufio"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LoadOBJTriangles reads the 'v' and 'f' records of an OBJ file into flat-shaded triangles.
// Positions are scaled then translated. Faces accept i, i/j, i//k and i/j/k forms, negative
// (relative) indices and n-gons, which are fan-triangulated. Degenerate triangles are dropped.
// A missing or unreadable file yields an empty slice.
func LoadOBJTriangles(path string, matID int, scale Real, translate Vec3) []Triangle {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var (
		vs   []Vec3
		tris []Triangle
		face []int
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			x := parseFloatOr0(fields[1])
			y := parseFloatOr0(fields[2])
			z := parseFloatOr0(fields[3])
			vs = append(vs, Vec3{x, y, z}.Mul(scale).Add(translate))
		case "f":
			face = face[:0]
			for _, tok := range fields[1:] {
				raw, _, _ := strings.Cut(tok, "/")
				if ix, ok := objIndex(len(vs), raw); ok {
					face = append(face, ix)
				}
			}
			tris = appendFan(tris, vs, face, matID)
		}
	}
	if err := sc.Err(); err != nil {
		slog.Info("mesh read stopped early", "path", path, "triangles", len(tris), "err", err)
	}
	return tris
}

func parseFloatOr0(s string) Real {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// objIndex maps a 1-based (or negative, relative) OBJ index into vs.
func objIndex(n int, raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, true
	case i < 0 && -i <= n:
		return n + i, true
	default:
		return 0, false
	}
}

// appendFan triangulates face as v0,vk,vk+1.
func appendFan(tris []Triangle, vs []Vec3, face []int, matID int) []Triangle {
	if len(face) < 3 {
		return tris
	}
	v0 := vs[face[0]]
	for k := 1; k+1 < len(face); k++ {
		v1, v2 := vs[face[k]], vs[face[k+1]]
		n, ok := faceNormal(v0, v1, v2)
		if !ok {
			continue
		}
		tris = append(tris, Triangle{V0: v0, V1: v1, V2: v2, N: n, MatID: matID})
	}
	return tris
}

// faceNormal returns the unit normal of (a,b,c), or false when the triangle is degenerate.
func faceNormal(a, b, c Vec3) (Vec3, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Len()
	if l <= 1e-12 {
		return Vec3{}, false
	}
	return n.Div(l), true
}
