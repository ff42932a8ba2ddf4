package receipt

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Filter", func() {
	records := []ReceiptRecord{
		{ID: 0, Date: "2024-01-15", ShopName: "Coffee Corner", Category: "food", Total: 80},
		{ID: 1, Date: "2024-02-01", ShopName: "City Taxi", Category: "transport", Total: 120},
		{ID: 2, Date: "2023-01-15", ShopName: "Coffee Corner", Category: "food", Total: 95},
	}

	It("should pass everything through with an empty filter", func() {
		Expect(Filter{}.Apply(records)).To(HaveLen(3))
	})

	It("should treat the All sentinel as no filtering", func() {
		f := Filter{Category: "All", Month: "All", Year: "All"}
		Expect(f.Apply(records)).To(HaveLen(3))
	})

	Describe("year and month", func() {
		It("should match the year component exactly", func() {
			filtered := Filter{Year: "2024"}.Apply(records)
			Expect(filtered).To(HaveLen(2))
			Expect(filtered[0].ID).To(Equal(0))
			Expect(filtered[1].ID).To(Equal(1))
		})

		It("should narrow further by month", func() {
			filtered := Filter{Year: "2024", Month: "01"}.Apply(records)
			Expect(filtered).To(HaveLen(1))
			Expect(filtered[0].ID).To(Equal(0))
		})

		It("should not match an unpadded month", func() {
			Expect(Filter{Month: "1"}.Apply(records)).To(BeEmpty())
		})

		It("should not match records with empty dates", func() {
			dateless := []ReceiptRecord{{ShopName: "No Date"}}
			Expect(Filter{Year: "2024"}.Apply(dateless)).To(BeEmpty())
		})
	})

	Describe("search", func() {
		It("should match shop names case-insensitively", func() {
			filtered := Filter{Search: "coffee"}.Apply(records)
			Expect(filtered).To(HaveLen(2))
		})

		It("should match substrings", func() {
			filtered := Filter{Search: "Taxi"}.Apply(records)
			Expect(filtered).To(HaveLen(1))
			Expect(filtered[0].ShopName).To(Equal("City Taxi"))
		})

		It("should return an empty set with aggregate zero when nothing matches", func() {
			filtered := Filter{Search: "no such shop"}.Apply(records)
			Expect(filtered).To(BeEmpty())
			Expect(Total(filtered)).To(Equal(0.0))
		})
	})

	Describe("category", func() {
		It("should match by exact string equality", func() {
			filtered := Filter{Category: "food"}.Apply(records)
			Expect(filtered).To(HaveLen(2))
		})

		It("should not match a different case", func() {
			Expect(Filter{Category: "Food"}.Apply(records)).To(BeEmpty())
		})
	})

	It("should combine all dimensions", func() {
		f := Filter{Search: "coffee", Category: "food", Year: "2023", Month: "01"}
		filtered := f.Apply(records)
		Expect(filtered).To(HaveLen(1))
		Expect(filtered[0].ID).To(Equal(2))
	})
})

var _ = Describe("Total", func() {
	It("should sum the net amounts", func() {
		records := []ReceiptRecord{{Total: 80}, {Total: 120.5}}
		Expect(Total(records)).To(Equal(200.5))
	})

	It("should be zero for an empty set", func() {
		Expect(Total(nil)).To(Equal(0.0))
	})
})

var _ = Describe("Years", func() {
	It("should derive distinct years sorted descending", func() {
		records := []ReceiptRecord{
			{Date: "2023-05-01"},
			{Date: "2024-01-15"},
			{Date: "2024-02-01"},
		}
		Expect(Years(records)).To(Equal([]string{"2024", "2023"}))
	})

	It("should skip empty dates and non-four-character years", func() {
		records := []ReceiptRecord{
			{Date: ""},
			{Date: "24-01-15"},
			{Date: "2024-01-15"},
		}
		Expect(Years(records)).To(Equal([]string{"2024"}))
	})
})
