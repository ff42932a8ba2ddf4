package receipt

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Row", func() {
	It("should render the twelve cells in column order", func() {
		rec := ReceiptRecord{
			Date:      "2024-03-10",
			ShopName:  "Test Mart",
			Category:  "food",
			Address:   "123 Main Rd",
			ReceiptNo: "INV-001",
			Price:     140.65,
			VAT:       9.85,
			Total:     150.5,
			Link:      "https://drive.google.com/file/d/abc/view",
			Note:      "lunch",
		}

		Expect(rec.Row()).To(Equal([]string{
			"2024-03-10", "Test Mart", "food", "123 Main Rd", "INV-001",
			"140.65", "", "9.85", "", "150.5",
			"https://drive.google.com/file/d/abc/view", "lunch",
		}))
	})

	It("should render zero amounts as empty cells", func() {
		row := ReceiptRecord{Total: 0}.Row()
		Expect(row[9]).To(Equal(""))
	})

	It("should not use exponent notation for large amounts", func() {
		row := ReceiptRecord{Total: 1234567.89}.Row()
		Expect(row[9]).To(Equal("1234567.89"))
	})
})

var _ = Describe("ReconstructRecords", func() {
	It("should return records newest first", func() {
		records := ReconstructRecords([][]string{
			{"2024-01-01", "First"},
			{"2024-01-02", "Second"},
			{"2024-01-03", "Third"},
		})

		Expect(records).To(HaveLen(3))
		Expect(records[0].ShopName).To(Equal("Third"))
		Expect(records[2].ShopName).To(Equal("First"))
	})

	It("should assign ids by storage position", func() {
		records := ReconstructRecords([][]string{
			{"2024-01-01", "First"},
			{"2024-01-02", "Second"},
		})

		Expect(records[0].ID).To(Equal(1)) // newest first, appended last
		Expect(records[1].ID).To(Equal(0))
	})

	It("should drop rows with zero cells", func() {
		records := ReconstructRecords([][]string{
			{"2024-01-01", "Kept"},
			{},
			{"2024-01-02", "Also kept"},
		})

		Expect(records).To(HaveLen(2))
	})

	It("should treat missing trailing cells as absent, not as an error", func() {
		records := ReconstructRecords([][]string{
			{"2024-01-01", "Short"},
		})

		rec := records[0]
		Expect(rec.Category).To(Equal(""))
		Expect(rec.Price).To(Equal(0.0))
		Expect(rec.Total).To(Equal(0.0))
		Expect(rec.Link).To(Equal(""))
		Expect(rec.Note).To(Equal(""))
	})

	It("should degrade non-numeric amount cells to zero", func() {
		records := ReconstructRecords([][]string{
			{"2024-01-01", "Odd", "food", "", "", "abc", "", "", "", "not a number"},
		})

		Expect(records[0].Price).To(Equal(0.0))
		Expect(records[0].Total).To(Equal(0.0))
	})

	It("should sum the aggregate over only the present numeric totals", func() {
		records := ReconstructRecords([][]string{
			{"2024-01-01", "A", "food", "", "", "", "", "", "", "100.5"},
			{"2024-01-02", "B"},
			{"2024-01-03", "C", "food", "", "", "", "", "", "", "garbage"},
			{"2024-01-04", "D", "food", "", "", "", "", "", "", "49.5"},
		})

		Expect(Total(records)).To(Equal(150.0))
	})

	It("should parse a full row back into a record", func() {
		records := ReconstructRecords([][]string{
			{"2024-03-10", "Test Mart", "food", "123 Main Rd", "INV-001",
				"140.65", "0", "9.85", "0", "150.5",
				"https://drive.google.com/file/d/abc123/view?usp=drivesdk", "lunch"},
		})

		rec := records[0]
		Expect(rec.Date).To(Equal("2024-03-10"))
		Expect(rec.ShopName).To(Equal("Test Mart"))
		Expect(rec.Total).To(Equal(150.5))
		Expect(rec.Note).To(Equal("lunch"))
	})

	It("should recover the image id from the drive link", func() {
		records := ReconstructRecords([][]string{
			{"2024-03-10", "Test Mart", "food", "", "", "", "", "", "", "150.5",
				"https://drive.google.com/file/d/abc123/view?usp=drivesdk"},
		})

		Expect(records[0].ImageID).To(Equal("abc123"))
	})

	It("should leave the image id empty for unrecognized links", func() {
		records := ReconstructRecords([][]string{
			{"2024-03-10", "Test Mart", "food", "", "", "", "", "", "", "150.5",
				"https://example.com/somewhere"},
		})

		Expect(records[0].ImageID).To(Equal(""))
	})
})
