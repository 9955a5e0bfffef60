package handlers

import (
	"fmt"
	"image/jpeg"
	"net/http"
	"strings"

	"github.com/fogleman/gg"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/basicfont"

	"github.com/doganiot/mywordismyword/models"
)

// ExportContractPDFHandler renders the contract as a downloadable PDF.
func ExportContractPDFHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	contract, err := ctrl.Get(id)
	if err != nil {
		abortWith(c, err)
		return
	}
	if !ctrl.CanView(contract, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this contract"})
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(contract.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, contract.Title, "", "C", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Contract #%d", contract.ContractNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", contract.Status), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 5, contract.Content, "", "L", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Parties", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, p := range contract.Parties {
		line := fmt.Sprintf("%s (%s) - %s", p.DisplayName(), p.Role, p.InvitationStatus)
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Signatures", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, s := range contract.Signatures {
		pdf.CellFormat(0, 6, fmt.Sprintf("Party #%d: %s", s.PartyID, signedAtDisplay(s)), "", 1, "L", false, 0, "")
	}

	fileName := fmt.Sprintf("contract_%d.pdf", contract.ContractNumber)
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := pdf.Output(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
	}
}

// ExportContractJPEGHandler renders a shareable image card of the
// contract.
func ExportContractJPEGHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := contractID(c)
	if !ok {
		return
	}

	contract, err := ctrl.Get(id)
	if err != nil {
		abortWith(c, err)
		return
	}
	if !ctrl.CanView(contract, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No access to this contract"})
		return
	}

	const width, height = 800, 1000
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetRGB(0.1, 0.1, 0.35)
	dc.DrawRectangle(0, 0, width, 70)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(strings.ToUpper(contract.Title), width/2, 35, 0.5, 0.5)

	dc.SetRGB(0, 0, 0)
	y := 100.0
	writeLine := func(s string) {
		dc.DrawString(s, 40, y)
		y += 18
	}
	writeLine(fmt.Sprintf("Contract #%d", contract.ContractNumber))
	writeLine(fmt.Sprintf("Status: %s", contract.Status))
	writeLine(fmt.Sprintf("Starts: %s, duration: %s",
		contract.StartDate.Format("02.01.2006"), contract.DurationDisplay()))
	y += 12

	for _, line := range wrapText(contract.Content, 90) {
		if y > height-120 {
			writeLine("...")
			break
		}
		writeLine(line)
	}

	y = height - 80
	dc.DrawString("Parties:", 40, y)
	y += 18
	for _, p := range contract.Parties {
		dc.DrawString(fmt.Sprintf("  %s (%s)", p.DisplayName(), p.InvitationStatus), 40, y)
		y += 18
	}

	fileName := fmt.Sprintf("contract_%d.jpg", contract.ContractNumber)
	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := jpeg.Encode(c.Writer, dc.Image(), &jpeg.Options{Quality: 90}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode image"})
	}
}

// wrapText breaks text into lines of at most limit characters on word
// boundaries.
func wrapText(text string, limit int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > limit {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}

func signedAtDisplay(s models.ContractSignature) string {
	if !s.IsSigned || s.SignedAt == nil {
		return "not signed"
	}
	return "signed " + s.SignedAt.Format("02.01.2006 15:04")
}
