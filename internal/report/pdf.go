package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/signintech/gopdf"
)

// Common DejaVuSans locations on Debian and Alpine images.
var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// RenderPDF renders a saved report as a downloadable PDF document.
func RenderPDF(rep *Report) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 18); err != nil {
		return nil, err
	}
	pdf.Cell(nil, rep.Title)
	pdf.Br(25)

	if err := pdf.SetFont("DejaVu", "", 10); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Created: %s", rep.CreatedAt.Format("02.01.2006 15:04")))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("Report ID: %s", rep.ID))
	pdf.Br(25)

	if err := writeSection(&pdf, "Reported Symptoms", rep.Symptoms); err != nil {
		return nil, err
	}
	if err := writeSection(&pdf, "AI Assessment", rep.Assessment); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gopdf.GoPdf, heading, body string) error {
	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return err
	}
	pdf.Cell(nil, heading)
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return err
	}
	for _, raw := range strings.Split(body, "\n") {
		if raw == "" {
			pdf.Br(8)
			continue
		}
		lines, _ := pdf.SplitText(raw, 500)
		for _, l := range lines {
			if pdf.GetY() > 790 {
				pdf.AddPage()
			}
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
	}
	pdf.Br(10)
	return nil
}
