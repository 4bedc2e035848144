//go:build ignore

// This program generates a sample 3MF package for manual testing.
// Run with: go run generate_3mf.go
package main

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="model" ContentType="application/vnd.ms-package.3dmanufacturing-3dmodel+xml"/>
</Types>`

const rels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Target="/3D/3dmodel.model" Id="rel0" Type="http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel"/>
</Relationships>`

func main() {
	out, err := os.Create("cube.3mf")
	if err != nil {
		panic(err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	write(zw, "[Content_Types].xml", contentTypes)
	write(zw, "_rels/.rels", rels)
	write(zw, "3D/3dmodel.model", model())
	if err := zw.Close(); err != nil {
		panic(err)
	}
}

func write(zw *zip.Writer, name, body string) {
	w, err := zw.Create(name)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write([]byte(body)); err != nil {
		panic(err)
	}
}

// model declares a 10mm cube, a two-cube component object, and places both.
func model() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<model unit="millimeter" xml:lang="en-US" xmlns="http://schemas.microsoft.com/3dmanufacturing/core/2015/02">
  <metadata name="Title">Sample cubes</metadata>
  <resources>
    <object id="1" name="cube" type="model">
      <mesh>
        <vertices>
`)
	for _, v := range [][3]int{{0, 0, 0}, {10, 0, 0}, {10, 10, 0}, {0, 10, 0}, {0, 0, 10}, {10, 0, 10}, {10, 10, 10}, {0, 10, 10}} {
		fmt.Fprintf(&b, "          <vertex x=\"%d\" y=\"%d\" z=\"%d\"/>\n", v[0], v[1], v[2])
	}
	b.WriteString("        </vertices>\n        <triangles>\n")
	for _, t := range [][3]int{{0, 2, 1}, {0, 3, 2}, {4, 5, 6}, {4, 6, 7}, {0, 1, 5}, {0, 5, 4}, {1, 2, 6}, {1, 6, 5}, {2, 3, 7}, {2, 7, 6}, {3, 0, 4}, {3, 4, 7}} {
		fmt.Fprintf(&b, "          <triangle v1=\"%d\" v2=\"%d\" v3=\"%d\"/>\n", t[0], t[1], t[2])
	}
	b.WriteString(`        </triangles>
      </mesh>
    </object>
    <object id="2" name="pair" type="model">
      <components>
        <component objectid="1"/>
        <component objectid="1" transform="1 0 0 0 1 0 0 0 1 15 0 0"/>
      </components>
    </object>
  </resources>
  <build>
    <item objectid="1"/>
    <item objectid="2" transform="1 0 0 0 1 0 0 0 1 0 20 0"/>
  </build>
</model>
`)
	return b.String()
}
