package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	cartapp "github.com/al1ce23/shitshop/internal/cart/app"
)

// textView prints the cart as a table after every change.
type textView struct {
	w        io.Writer
	currency string
	muted    bool
}

func newTextView(w io.Writer, currency string) *textView {
	return &textView{w: w, currency: currency}
}

func (v *textView) Render(s cartapp.Snapshot) {
	if v.muted {
		return
	}
	if len(s.Items) == 0 {
		fmt.Fprintln(v.w, "Your cart is empty")
		return
	}

	tw := tabwriter.NewWriter(v.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range s.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", it.ID, it.Name, it.Quantity, it.Price.StringFixed(2), it.LineTotal().StringFixed(2))
	}
	tw.Flush()
	fmt.Fprintf(v.w, "Items: %d  Total: %s %s\n", s.Count, s.Total.StringFixed(2), v.currency)
}
