package scene

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"wireframe-rasterizer/internal/mathutil"
)

// jsonScene matches the scene file schema:
//
//	{"name": "...", "vertices": [[x, y, z], ...], "indices": [[i, j, k], ...]}
type jsonScene struct {
	Name     string       `json:"name"`
	Vertices [][3]float64 `json:"vertices"`
	Indices  [][3]uint32  `json:"indices"`
}

// Load reads a scene from a .json or .obj file.
func Load(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, fmt.Errorf("scene: read %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var s Scene
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		s, err = ParseJSON(f)
	case ".obj":
		s, err = ParseOBJ(f)
	default:
		return Scene{}, fmt.Errorf("scene: unknown extension %q: %s", ext, path)
	}
	if err != nil {
		return Scene{}, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = name
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// ParseJSON decodes a JSON scene.
func ParseJSON(r io.Reader) (Scene, error) {
	var js jsonScene
	if err := json.NewDecoder(r).Decode(&js); err != nil {
		return Scene{}, err
	}
	s := Scene{
		Name:     js.Name,
		Vertices: make([]mathutil.Vec3, len(js.Vertices)),
		Indices:  js.Indices,
	}
	for i, v := range js.Vertices {
		s.Vertices[i] = mathutil.Vec3(v)
	}
	return s, nil
}

// ParseOBJ reads the geometry of a Wavefront OBJ file: "v" positions and
// "f" faces. Faces with more than three corners are fan-triangulated.
// Texture and normal references (v/vt/vn) are accepted and ignored, as are
// all other statements.
func ParseOBJ(r io.Reader) (Scene, error) {
	var s Scene
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "o":
			if s.Name == "" && len(fields) > 1 {
				s.Name = fields[1]
			}
		case "v":
			if len(fields) < 4 {
				return Scene{}, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			var v mathutil.Vec3
			for k := 0; k < 3; k++ {
				f, err := strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					return Scene{}, fmt.Errorf("line %d: %w", line, err)
				}
				v[k] = f
			}
			s.Vertices = append(s.Vertices, v)
		case "f":
			if len(fields) < 4 {
				return Scene{}, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			corners := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := objIndex(ref, len(s.Vertices))
				if err != nil {
					return Scene{}, fmt.Errorf("line %d: %w", line, err)
				}
				corners = append(corners, idx)
			}
			for k := 1; k+1 < len(corners); k++ {
				s.Indices = append(s.Indices, [3]uint32{corners[0], corners[k], corners[k+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// objIndex resolves one face corner ("7", "7/2", "7//3", "-1") to a
// zero-based vertex index. Negative indices count back from the most
// recent vertex.
func objIndex(ref string, nverts int) (uint32, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", ref)
	}
	switch {
	case n > 0 && n <= nverts:
		return uint32(n - 1), nil
	case n < 0 && -n <= nverts:
		return uint32(nverts + n), nil
	}
	return 0, fmt.Errorf("face index %d out of range (%d vertices)", n, nverts)
}
