// This tool assembles a minimal PDF/raster document from one or more
// pre-encoded CCITT fax images and writes it to an output file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/benoitkugler/pdfraster/content"
	"github.com/benoitkugler/pdfraster/model"
	"github.com/benoitkugler/pdfraster/output"
	"github.com/benoitkugler/pdfraster/rasterimage"
	"github.com/benoitkugler/pdfraster/writer"
)

func check(err error) {
	if err != nil {
		fmt.Println("fatal error:", err)
		os.Exit(1)
	}
}

func main() {
	width := flag.Int("width", 1600, "page width in points")
	height := flag.Int("height", 2200, "page height in points")
	out := flag.String("o", "out.pdf", "output file path")
	flag.Parse()

	imagePaths := flag.Args()
	if len(imagePaths) == 0 {
		fmt.Println("usage: pdfraster -o out.pdf image1.g4 [image2.g4 ...]")
		os.Exit(1)
	}

	doc := model.NewDocument()
	cat := model.CatalogNew(doc)
	info := model.InfoNew(doc)
	check(info.SetProducer("pdfraster"))
	info.SetCreationDate()
	info.SetModDate()

	f, err := os.Create(*out)
	check(err)
	defer f.Close()

	w := bufio.NewWriter(f)
	stream := output.New(w)

	writer.WritePDFHeader(stream, "1.7")
	stream.PutString("%PDF-raster_1.0\n")

	for i, path := range imagePaths {
		encoded, err := os.ReadFile(path)
		check(err)

		src := rasterimage.NewCCITTSource(*width, *height, -1, false, encoded)
		check(src.Validate())

		xobjRef := rasterimage.NewXObject(doc, src, doc.Atoms.Std.DeviceRGB)
		xobjName := fmt.Sprintf("Im%d", i)

		page := model.PageNewSimple(doc, cat, float64(*width), float64(*height))
		pageDict, _ := page.Value().AsDict()
		resources, _ := pageDict.Get(doc.Atoms.Std.Resources)
		resourcesDict, _ := resources.AsDict()
		xobjDict, _ := resourcesDict.Get(doc.Atoms.Std.XObject)
		xobjDictVal, _ := xobjDict.AsDict()
		xobjDictVal.Put(doc.Atoms.Intern(xobjName), model.ReferenceValue(xobjRef))

		contentsRef := model.ContentsNew(doc, content.Produce(func(cw *content.Writer, _ interface{}) error {
			content.ImagePlacement(cw, xobjName, float64(*width), 0, 0, float64(*height), 0, 0)
			return nil
		}, nil), nil)
		pageDict.Put(doc.Atoms.Intern("Contents"), model.ReferenceValue(contentsRef))

		cat.AddPage(page)
	}

	fileID := model.GenerateFileID(doc.Pool, info.Dict())

	check(writer.WriteEndOfDocument(stream, doc.Xref, cat.Ref, info.Ref, fileID))
	check(stream.Err())
	check(w.Flush())

	fmt.Println("wrote", *out)
}
