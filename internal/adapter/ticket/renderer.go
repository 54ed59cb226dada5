// Package ticket renders e-tickets as PDF documents and QR codes.
package ticket

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
)

type rgb struct{ r, g, b int }

var (
	headerBlue = rgb{13, 71, 161}
	textGrey   = rgb{50, 50, 50}
	fareGreen  = rgb{46, 125, 50}
)

type Renderer struct {
	qrSize int
}

func NewRenderer() *Renderer {
	return &Renderer{qrSize: 256}
}

func (r *Renderer) RenderQR(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, r.qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

func (r *Renderer) RenderPDF(t domain.Ticket) ([]byte, error) {
	qrPNG, err := r.RenderQR(t.QRPayload())
	if err != nil {
		return nil, err
	}

	b := t.Booking
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFillColor(headerBlue.r, headerBlue.g, headerBlue.b)
	pdf.Rect(10, 10, 190, 30, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 20)
	pdf.SetXY(20, 20)
	pdf.Cell(0, 0, "RAILWAY E-TICKET")

	pdf.SetFont("Arial", "", 12)
	pdf.SetXY(140, 18)
	pdf.CellFormat(50, 5, "PNR NUMBER", "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 16)
	pdf.SetXY(140, 24)
	pdf.CellFormat(50, 5, b.PNR, "", 1, "R", false, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(10, 40, 190, 110, "D")

	const top = 55.0

	berth := b.BerthPreference
	if berth == "" {
		berth = "No Preference"
	}
	section(pdf, 20, 90, top, "PASSENGER DETAILS", [][2]string{
		{"Name", b.PassengerName},
		{"Age", fmt.Sprintf("%d Years", b.PassengerAge)},
		{"Berth", berth},
		{"Status", string(b.Status)},
	})

	seat := b.SeatNumber
	if seat == "" {
		seat = "Allocated later"
	}
	section(pdf, 110, 180, top, "JOURNEY DETAILS", [][2]string{
		{"Train", t.Train.Name},
		{"Route", t.Train.Source + " -> " + t.Train.Destination},
		{"Class", string(b.SeatClass)},
		{"Seat No", seat},
	})

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 85, 100, 35, 35, false, opts, 0, "")

	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(11, 138, 188, 11, "F")
	pdf.SetXY(10, 140)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(fareGreen.r, fareGreen.g, fareGreen.b)
	pdf.CellFormat(190, 8, fmt.Sprintf("TOTAL FARE: Rs. %.2f", b.Fare), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// section draws a titled, underlined column of label/value rows.
func section(pdf *gofpdf.Fpdf, x, ruleEnd, y float64, title string, rows [][2]string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetXY(x, y)
	pdf.SetTextColor(headerBlue.r, headerBlue.g, headerBlue.b)
	pdf.Cell(0, 10, title)
	pdf.Line(x, y+8, ruleEnd, y+8)

	pdf.SetTextColor(textGrey.r, textGrey.g, textGrey.b)
	for i, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetXY(x, y+15+float64(i*8))
		pdf.Cell(30, 6, row[0]+":")
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(40, 6, row[1])
	}
}
