package menus

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"mealprep/models"
)

// MenuLink is the web page of a menu, encoded in the printout's QR code.
func MenuLink(baseURL, menuID string) string {
	return strings.TrimRight(baseURL, "/") + "/history/" + menuID
}

// recipeFont is the family registered from a UTF-8 TTF file.
const recipeFont = "recipe"

// latin1 reports whether s prints with the core fonts.
func latin1(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return false
		}
	}
	return true
}

// rowLabel is what the printout shows for a recipe. Without a UTF-8 font,
// names the core fonts cannot draw fall back to the recipe id; the QR code
// leads to the full menu.
func rowLabel(r models.Recipe, utf8Font bool) string {
	if utf8Font || latin1(r.Name) {
		return r.Name
	}
	return r.ID
}

// RenderPDF lays out one menu on an A4 page: a row per weekday, the weekly
// nutrition and a QR code pointing at link. recipes are looked up by id.
// fontPath, when not empty, is a UTF-8 TTF used for recipe names.
func RenderPDF(menu models.WeeklyMenu, recipes []models.Recipe, link, fontPath string) ([]byte, error) {
	qrPNG, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("menus: generate qr code: %w", err)
	}

	byID := make(map[string]models.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	nameFont := "Arial"
	if fontPath != "" {
		pdf.AddUTF8Font(recipeFont, "", fontPath)
		nameFont = recipeFont
		tr = func(s string) string { return s }
	}
	pdf.SetTitle("Weekly menu "+menu.ID, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Weekly Meal Prep Menu")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Generated "+menu.GeneratedAt.Format("2006-01-02 15:04 MST"))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(30, 8, "Day", "1", 0, "L", false, 0, "")
	pdf.CellFormat(100, 8, "Recipe", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Time (min)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 8, "Keeps (days)", "1", 1, "R", false, 0, "")

	for _, day := range models.Weekdays {
		id := menu.DailyRecipes.Get(day)
		name, minutes, keeps := id, "-", "-"
		if r, ok := byID[id]; ok {
			name = rowLabel(r, fontPath != "")
			minutes = fmt.Sprintf("%d", r.CookingTime)
			if r.MealPrep.IsEnabled {
				keeps = fmt.Sprintf("%d", r.MealPrep.StorageDays)
			}
		}
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(30, 8, strings.ToUpper(string(day[:1]))+string(day[1:]), "1", 0, "L", false, 0, "")
		pdf.SetFont(nameFont, "", 11)
		pdf.CellFormat(100, 8, tr(name), "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(25, 8, minutes, "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 8, keeps, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	n := menu.WeeklyNutrition
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Weekly nutrition")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Calories: %.0f kcal (%.1f per day)", n.TotalCalories, n.AverageCaloriesPerDay),
		fmt.Sprintf("Protein: %.1f g", n.TotalProtein),
		fmt.Sprintf("Fat: %.1f g", n.TotalFat),
		fmt.Sprintf("Carbohydrate: %.1f g", n.TotalCarbohydrate),
	} {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	imageOpts := gofpdf.ImageOptions{
		ImageType: "PNG",
	}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 150, 40, 40, false, imageOpts, 0, "")
	pdf.SetXY(150, 191)
	pdf.SetFont("Arial", "", 8)
	pdf.Cell(40, 4, "Scan to open this menu")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("menus: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
