package colleges

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"gradbridge/store"
	"gradbridge/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func siteURL() string {
	if u := os.Getenv("SITE_URL"); u != "" {
		return u
	}
	return "http://localhost:3000"
}

// Brochure renders a one-page PDF summary of a college with a QR code
// back to its page on the site, for counsellors to print and hand out.
func Brochure(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slug := ps.ByName("slug")

	college, err := store.DB.GetCollegeBySlug(r.Context(), slug, true)
	if errors.Is(err, store.ErrNotFound) {
		utils.SendError(w, http.StatusNotFound, "College not found")
		return
	}
	if err != nil {
		log.Printf("brochure %q: lookup failed: %v", slug, err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to generate brochure")
		return
	}

	countryName := "International"
	if country, err := store.ResolveCountry(r.Context(), college.CountryRef); err == nil && country != nil {
		countryName = country.Name
	}

	pageURL := fmt.Sprintf("%s/colleges/%s", siteURL(), college.Slug)
	qrPNG, err := qrcode.Encode(pageURL, qrcode.Medium, 256)
	if err != nil {
		log.Printf("brochure %q: QR encode failed: %v", slug, err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to generate brochure")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, college.Name)
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Country: %s", countryName))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Duration: %s", college.Duration))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Fees: %.0f", college.Fees))
	pdf.Ln(8)
	if college.EstablishmentYear > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Established: %d", college.EstablishmentYear))
		pdf.Ln(8)
	}
	if len(college.Exams) > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Accepted exams: %v", college.Exams))
		pdf.Ln(8)
	}
	if desc := college.Description(); desc != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 6, desc, "", "L", false)
	}

	pdf.Ln(8)
	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 80, pdf.GetY(), 50, 50, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("brochure %q: PDF render failed: %v", slug, err)
		utils.SendError(w, http.StatusInternalServerError, "Failed to generate brochure")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-brochure.pdf", college.Slug))
	w.Write(buf.Bytes())
}
