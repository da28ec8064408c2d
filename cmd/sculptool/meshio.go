package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/sculpt/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// loadTriangles reads a triangle model from an STL or OBJ file.
func loadTriangles(path string) ([][3]r3.Vec, error) {
	var (
		fm  *fauxgl.Mesh
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		fm, err = fauxgl.LoadSTL(path)
	case ".obj":
		fm, err = fauxgl.LoadOBJ(path)
	default:
		return nil, fmt.Errorf("unsupported model extension %q", ext)
	}
	if err != nil {
		return nil, err
	}
	tris := make([][3]r3.Vec, len(fm.Triangles))
	for i, t := range fm.Triangles {
		tris[i] = [3]r3.Vec{
			fromFauxgl(t.V1.Position),
			fromFauxgl(t.V2.Position),
			fromFauxgl(t.V3.Position),
		}
	}
	return tris, nil
}

// saveSTL writes the smoothed grid back out through the welded face list.
func saveSTL(path string, g *mesh.Grid, faces [][3]int) error {
	tris := make([]*fauxgl.Triangle, len(faces))
	for i, f := range faces {
		tris[i] = fauxgl.NewTriangleForPoints(
			toFauxgl(g.Position(mesh.Vertex(f[0]))),
			toFauxgl(g.Position(mesh.Vertex(f[1]))),
			toFauxgl(g.Position(mesh.Vertex(f[2]))),
		)
	}
	return fauxgl.SaveSTL(path, fauxgl.NewTriangleMesh(tris))
}

func fromFauxgl(v fauxgl.Vector) r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func toFauxgl(v r3.Vec) fauxgl.Vector { return fauxgl.Vector{X: v.X, Y: v.Y, Z: v.Z} }
