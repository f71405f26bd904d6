package view

// Style textos y formato de la vista de detalle. Se pasa por valor a cada vista;
// no existe un registro global de estilos.
type Style struct {
	Title         string
	BillLabel     string
	PartyCaption  string
	ItemsCaption  string
	TotalsCaption string
	PartyFormat   string // recibe piso y número de local, en ese orden
	Currency      string // prefijo opcional, p. ej. "$"
	TotalLabels   [3]string
	WindowWidth   int
	WindowHeight  int
}

// DefaultStyle estilo por defecto del panel.
func DefaultStyle() Style {
	return Style{
		Title:         "GLOBAL CITY MANAGEMENT",
		BillLabel:     "Bill No.",
		PartyCaption:  "Party Details",
		ItemsCaption:  "Items",
		TotalsCaption: "Totals",
		PartyFormat:   "Floor %s, Shop %s",
		TotalLabels:   [3]string{"General Total", "Price Amount", "Annual Cost"},
		WindowWidth:   800,
		WindowHeight:  600,
	}
}

// WithDefaults completa los campos vacíos con los de DefaultStyle.
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	if s.Title == "" {
		s.Title = d.Title
	}
	if s.BillLabel == "" {
		s.BillLabel = d.BillLabel
	}
	if s.PartyCaption == "" {
		s.PartyCaption = d.PartyCaption
	}
	if s.ItemsCaption == "" {
		s.ItemsCaption = d.ItemsCaption
	}
	if s.TotalsCaption == "" {
		s.TotalsCaption = d.TotalsCaption
	}
	if s.PartyFormat == "" {
		s.PartyFormat = d.PartyFormat
	}
	for i, l := range s.TotalLabels {
		if l == "" {
			s.TotalLabels[i] = d.TotalLabels[i]
		}
	}
	if s.WindowWidth <= 0 {
		s.WindowWidth = d.WindowWidth
	}
	if s.WindowHeight <= 0 {
		s.WindowHeight = d.WindowHeight
	}
	return s
}
