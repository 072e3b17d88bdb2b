package wizard

import (
	"context"
	"strings"

	"suncrest/models"

	"go.uber.org/zap"
)

// LoadRooms eagerly fetches the catalog and keeps only bookable rooms.
// A catalog failure surfaces as a retryable CatalogError; it never
// reaches the wizard controller as a raw transport error.
func (s *DefaultWizardService) LoadRooms(ctx context.Context) ([]models.RoomView, error) {
	rooms, err := s.Catalog.ListRooms(ctx)
	if err != nil {
		s.Logger.Error("failed to load room catalog", zap.Error(err))
		return nil, &CatalogError{Message: "Failed to load rooms. Please try again later."}
	}

	views := make([]models.RoomView, 0, len(rooms))
	for _, room := range rooms {
		if room.Status != models.RoomStatusAvailable {
			continue
		}
		views = append(views, models.RoomView{
			Room:     room,
			Features: roomFeatures(room),
			Popular:  isPopularCategory(room.Category.Name),
		})
	}
	return views, nil
}

// roomFeatures derives amenity labels from the category name.
func roomFeatures(room models.Room) []string {
	features := []string{
		"Room " + room.RoomNumber,
		room.Category.Name,
	}

	name := strings.ToLower(room.Category.Name)
	switch {
	case strings.Contains(name, "deluxe"):
		features = append(features, "Private Jacuzzi", "Smart TV", "Wi-Fi", "Butler service")
	case strings.Contains(name, "premium"):
		features = append(features, "Mini-fridge", "Smart TV", "Wi-Fi", "Breakfast included")
	case strings.Contains(name, "a/c"), strings.Contains(name, "ac"):
		features = append(features, "Air Conditioning", "TV", "Wi-Fi")
	default:
		features = append(features, "Ceiling fan", "Basic amenities")
	}
	return features
}

func isPopularCategory(categoryName string) bool {
	return strings.Contains(strings.ToLower(categoryName), "deluxe")
}
