package panel

import "github.com/ziadkadry99/guidebook/internal/view"

func svg(viewBox string, items ...view.Item) view.Node {
	base := []view.Item{
		view.Attr("xmlns", "http://www.w3.org/2000/svg"),
		view.Attr("viewBox", viewBox),
		view.Attr("fill", "none"),
		view.Attr("stroke", "currentColor"),
		view.Class("h-full", "w-full"),
	}
	return view.El("svg", append(base, items...)...)
}

func nextIcon() view.Node {
	return svg("0 0 24 24",
		view.El("path",
			view.Attr("stroke-linecap", "round"),
			view.Attr("stroke-linejoin", "round"),
			view.Attr("stroke-width", "2"),
			view.Attr("d", "M13 7l5 5m0 0l-5 5m5-5H6"),
		),
	)
}

func spinnerIcon() view.Node {
	return svg("0 0 24 24",
		view.El("circle",
			view.Attr("cx", "12"),
			view.Attr("cy", "12"),
			view.Attr("r", "10"),
			view.Attr("stroke-width", "4"),
			view.Attr("opacity", "0.25"),
		),
		view.El("path",
			view.Attr("fill", "currentColor"),
			view.Attr("d", "M4 12a8 8 0 018-8v4a4 4 0 00-4 4H4z"),
		),
	)
}
