package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu     list.Model
	wardrobeList list.Model
	outfitView   table.Model
	textInput    textinput.Model
	spinner      spinner.Model
	client       *ApiClient
	planResult   *PlanResult
	currentView  string
	error        string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Initialize main menu items
	items := []list.Item{
		item{title: "Wardrobe", desc: "View garments and add color variants"},
		item{title: "Outfit Calendar", desc: "View planned outfits by date"},
		item{title: "Plan Week", desc: "Generate outfits for the coming week"},
		item{title: "Exit", desc: "Exit the application"},
	}

	// Initialize main menu
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Garderobe CLI"

	// Initialize wardrobe list view
	wardrobeList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	wardrobeList.Title = "Wardrobe"

	// Initialize outfit calendar view
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Top", Width: 22},
		{Title: "Bottom", Width: 22},
		{Title: "Footwear", Width: 22},
	}
	outfitTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(9),
	)

	// Initialize text input
	ti := textinput.New()
	ti.Placeholder = "garment,color (e.g. shirt,#2ECC71)"
	ti.CharLimit = 64
	ti.Width = 40

	// Initialize API client
	client := NewApiClient()

	return Model{
		mainMenu:     mainMenu,
		wardrobeList: wardrobeList,
		outfitView:   outfitTable,
		spinner:      s,
		textInput:    ti,
		client:       client,
		currentView:  "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)
		m.wardrobeList.SetSize(msg.Width-h, msg.Height-v)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.currentView != "add_color" {
				return m, tea.Quit
			}
		case "enter":
			if m.currentView == "main" {
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Wardrobe":
						m.currentView = "wardrobe"
						return m, fetchWardrobe(m.client)
					case "Outfit Calendar":
						m.currentView = "outfits"
						return m, fetchOutfits(m.client)
					case "Plan Week":
						m.currentView = "plan"
						return m, planWeek(m.client)
					}
				}
			} else if m.currentView == "add_color" && m.textInput.Focused() {
				return m, handleColorInput(m)
			}
		case "esc":
			if m.currentView == "add_color" {
				m.currentView = "wardrobe"
				return m, fetchWardrobe(m.client)
			} else if m.currentView != "main" {
				m.currentView = "main"
			}
		case "a":
			if m.currentView == "wardrobe" {
				m.currentView = "add_color"
				m.error = ""
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, nil
			}
		}
	case wardrobeMsg:
		m.wardrobeList.SetItems(convertItemsToList(msg.items))
		return m, nil
	case outfitsMsg:
		m.outfitView.SetRows(convertOutfitsToRows(msg.outfits))
		return m, nil
	case planMsg:
		m.planResult = &msg.result
		return m, nil
	case errorMsg:
		m.error = msg.err
		return m, nil
	case confirmMsg:
		m.error = successStyle.Render(msg.message)
		m.currentView = "wardrobe"
		return m, fetchWardrobe(m.client)
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "wardrobe":
		m.wardrobeList, cmd = m.wardrobeList.Update(msg)
	case "outfits":
		m.outfitView, cmd = m.outfitView.Update(msg)
	case "add_color":
		m.textInput, cmd = m.textInput.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "wardrobe":
		help := "\nPress 'a' to add a color, 'esc' to go back\n"
		if m.error != "" {
			help += m.error + "\n"
		}
		return docStyle.Render(m.wardrobeList.View() + help)
	case "outfits":
		return docStyle.Render(titleStyle.Render("Outfit Calendar") + "\n\n" + m.outfitView.View() + "\nPress 'esc' to go back")
	case "add_color":
		help := "\nEnter garment and color. Format: <garment>,<hex color>\nPress 'enter' to add, 'esc' to cancel\n"
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(titleStyle.Render("Add Color") + "\n\n" + m.textInput.View() + help)
	case "plan":
		return docStyle.Render(planView(m.planResult, m.error))
	default:
		return "Loading..."
	}
}

// Custom message types for the tea.Model
type wardrobeMsg struct {
	items []WardrobeItem
}

type outfitsMsg struct {
	outfits map[string]Outfit
}

type planMsg struct {
	result PlanResult
}

type errorMsg struct {
	err string
}

type confirmMsg struct {
	message string
}

// fetchWardrobe retrieves the wardrobe from the API
func fetchWardrobe(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		items, err := client.GetWardrobe()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching wardrobe: %v", err)}
		}
		return wardrobeMsg{items: items}
	}
}

// fetchOutfits retrieves the outfit calendar from the API
func fetchOutfits(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		outfits, err := client.GetOutfits()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching outfits: %v", err)}
		}
		return outfitsMsg{outfits: outfits}
	}
}

// planWeek requests a plan for the week starting today
func planWeek(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		start := time.Now().Format("2006-01-02")
		result, err := client.PlanWeek(start, true)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error planning week: %v", err)}
		}
		return planMsg{result: *result}
	}
}

// handleColorInput processes input for adding a color
func handleColorInput(m Model) tea.Cmd {
	input := m.textInput.Value()
	parts := strings.SplitN(input, ",", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return func() tea.Msg {
			return errorMsg{err: "Format: <garment>,<hex color>"}
		}
	}

	itemID := strings.TrimSpace(parts[0])
	color := strings.TrimSpace(parts[1])

	return func() tea.Msg {
		if _, err := m.client.AddColor(itemID, color); err != nil {
			return errorMsg{err: fmt.Sprintf("Error adding color: %v", err)}
		}
		return confirmMsg{message: fmt.Sprintf("Added %s to %s", color, itemID)}
	}
}

// convertItemsToList converts wardrobe items to list items
func convertItemsToList(items []WardrobeItem) []list.Item {
	listItems := make([]list.Item, len(items))
	for i, w := range items {
		listItems[i] = item{
			title: w.ID,
			desc:  fmt.Sprintf("%d colors: %s", len(w.Colors), strings.Join(w.Colors, " ")),
		}
	}
	return listItems
}

// convertOutfitsToRows converts the outfit calendar to table rows
func convertOutfitsToRows(outfits map[string]Outfit) []table.Row {
	dates := make([]string, 0, len(outfits))
	for date := range outfits {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := make([]table.Row, len(dates))
	for i, date := range dates {
		outfit := outfits[date]
		rows[i] = table.Row{
			date,
			slotLabel(outfit.Top),
			slotLabel(outfit.Bottom),
			slotLabel(outfit.Footwear),
		}
	}
	return rows
}

// slotLabel formats one outfit slot for display
func slotLabel(slot *OutfitSlot) string {
	if slot == nil {
		return "-"
	}
	return fmt.Sprintf("%s %s", slot.ID, slot.Color)
}

// planView renders the result of a planning request
func planView(result *PlanResult, errText string) string {
	view := titleStyle.Render("Plan Week") + "\n\n"
	if errText != "" {
		view += errorStyle.Render(errText) + "\n"
		view += "Press 'esc' to return to the main menu"
		return view
	}
	if result == nil {
		view += "Planning the week...\n"
		return view
	}

	view += infoStyle.Render(fmt.Sprintf("Mode: %s", result.Mode)) + "\n\n"

	dates := make([]string, 0, len(result.Outfits))
	for date := range result.Outfits {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		outfit := result.Outfits[date]
		view += fmt.Sprintf("%s  top: %s  bottom: %s  footwear: %s\n",
			date, slotLabel(outfit.Top), slotLabel(outfit.Bottom), slotLabel(outfit.Footwear))
	}

	view += "\nPress 'esc' to return to the main menu"
	return view
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
