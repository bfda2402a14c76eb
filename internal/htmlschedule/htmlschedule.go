// Package htmlschedule renders a solved SchedulingResult as a static HTML
// table (§6 HTML schedule) with one column per venue, each listing its
// EventGroups in start order with their start and end times. The table has
// a single body row: there is no per-slot time axis, and a group's cell does
// not span rows by its duration. Built on html/template.
package htmlschedule

import (
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

// cell is one EventGroup placed at a venue/slot for the grid template.
type cell struct {
	GroupID    string
	EventType  scheduler.EventType
	Categories string
	StartTime  string
	EndTime    string
	RowSpan    int
}

// column is one venue's ordered cells.
type column struct {
	Venue scheduler.Venue
	Cells []cell
}

// gridData is the template's root data value.
type gridData struct {
	Title   string
	Columns []column
}

var templateFuncs = template.FuncMap{
	// rowspanPx turns a slot rowspan count into a CSS grid row count.
	"rowspanPx": func(n int) int {
		if n < 1 {
			return 1
		}
		return n
	},
}

const gridTemplateSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; font-size: 13px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4px 6px; vertical-align: top; }
th { background: #eee; }
td.empty { background: #fafafa; }
.group-id { font-weight: bold; }
.categories { color: #555; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead>
<tr>
{{range .Columns}}<th>{{.Venue}}</th>{{end}}
</tr>
</thead>
<tbody>
<tr>
{{range .Columns}}
<td>
{{range .Cells}}
<div class="cell">
  <div class="group-id">{{.GroupID}} &mdash; {{.EventType}}</div>
  <div class="categories">{{.Categories}}</div>
  <div class="time">{{.StartTime}}&ndash;{{.EndTime}}</div>
</div>
{{end}}
</td>
{{end}}
</tr>
</tbody>
</table>
</body>
</html>
`

var gridTemplate = template.Must(template.New("grid").Funcs(templateFuncs).Parse(gridTemplateSource))

// Render writes the HTML schedule grid for a solved result to w. startHour
// and startMinute anchor slot 0 to a wall-clock time, matching the
// event-overview export's own clock-time convention; title is rendered
// verbatim as the page heading.
func Render(w io.Writer, result *scheduler.SchedulingResult, title string, startHour, startMinute int) error {
	if result.Status != scheduler.StatusSolved {
		return fmt.Errorf("htmlschedule: cannot render a %s result", result.Status)
	}

	byVenue := make(map[scheduler.Venue][]*scheduler.ScheduledGroup)
	var venueOrder []scheduler.Venue
	for _, sg := range result.Groups {
		if _, seen := byVenue[sg.Venue]; !seen {
			venueOrder = append(venueOrder, sg.Venue)
		}
		byVenue[sg.Venue] = append(byVenue[sg.Venue], sg)
	}
	sort.Slice(venueOrder, func(i, j int) bool { return venueOrder[i] < venueOrder[j] })

	data := gridData{Title: title}
	for _, v := range venueOrder {
		groups := byVenue[v]
		sort.Slice(groups, func(i, j int) bool { return groups[i].StartSlot < groups[j].StartSlot })

		col := column{Venue: v}
		for _, sg := range groups {
			startMin := startHour*60 + startMinute + sg.StartSlot*result.SlotDurationMinutes
			endSlot := sg.EndSlot(result.SlotDurationMinutes)
			endMin := startHour*60 + startMinute + endSlot*result.SlotDurationMinutes
			col.Cells = append(col.Cells, cell{
				GroupID:    sg.Group.ID,
				EventType:  sg.Group.EventType,
				Categories: categoriesOf(sg.Group),
				StartTime:  clockString(startMin),
				EndTime:    clockString(endMin),
				RowSpan:    endSlot - sg.StartSlot,
			})
		}
		data.Columns = append(data.Columns, col)
	}

	return gridTemplate.Execute(w, data)
}

func clockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)
}

func categoriesOf(g *scheduler.EventGroup) string {
	seen := make(map[scheduler.Category]bool)
	var cats []scheduler.Category
	for _, e := range g.Events {
		if !seen[e.Category] {
			seen[e.Category] = true
			cats = append(cats, e.Category)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	s := ""
	for i, c := range cats {
		if i > 0 {
			s += ", "
		}
		s += string(c)
	}
	return s
}
