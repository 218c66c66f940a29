package layout_test

import (
	"fmt"

	"github.com/jverhoef/cardrail/pkg/card"
	"github.com/jverhoef/cardrail/pkg/layout"
)

func ExampleCompute() {
	cards := []card.Card{
		{ID: "intro", Kind: card.KindLead, Size: card.Size2x2},
		{ID: "poster", Kind: card.KindBody, Size: card.Size1x1, Category: "design"},
		{ID: "shop", Kind: card.KindBody, Size: card.Size1x1, Category: "web"},
		{ID: "contact", Kind: card.KindTrail, Size: card.Size2x2},
	}

	l := layout.Compute(cards, 1920)

	lead, _ := l.PositionFor("intro")
	fmt.Println("lead centered at:", lead.CenterX)
	fmt.Println("categories:", len(l.Anchors))
	fmt.Println("overflows viewport:", l.ContainerWidth > l.ViewportWidth)
	// Output:
	// lead centered at: 960
	// categories: 2
	// overflows viewport: true
}

func ExampleMemo() {
	cards := []card.Card{
		{ID: "intro", Kind: card.KindLead, Size: card.Size2x2},
		{ID: "contact", Kind: card.KindTrail, Size: card.Size2x2},
	}

	memo := layout.NewMemo(16)
	a := memo.Compute(cards, 1440)
	b := memo.Compute(cards, 1440) // same inputs: cached

	fmt.Println("same layout:", a == b)
	// Output: same layout: true
}
