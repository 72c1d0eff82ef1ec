package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/staybook/app/models"
	"github.com/shashiranjanraj/staybook/app/repositories"
)

func init() {
	Register("rooms", seedRooms)
}

var demoRooms = []models.Room{
	{
		Name:          "Courtyard Standard",
		Description:   "Queen bed overlooking the inner courtyard.",
		PricePerNight: 12000,
		Category:      models.CategoryStandard,
		Capacity:      2,
		ImageURL:      "https://images.unsplash.com/photo-1566665797739-1674de7a421a",
	},
	{
		Name:          "Garden Standard Twin",
		Description:   "Two single beds and a private garden terrace.",
		PricePerNight: 14500,
		Category:      models.CategoryStandard,
		Capacity:      2,
		ImageURL:      "https://images.unsplash.com/photo-1590490360182-c33d57733427",
	},
	{
		Name:          "Heritage Suite",
		Description:   "Separate lounge, carved teak furniture and a soaking tub.",
		PricePerNight: 32000,
		Category:      models.CategorySuite,
		Capacity:      3,
		ImageURL:      "https://images.unsplash.com/photo-1578683010236-d716f9a3f461",
		IsFeatured:    true,
	},
	{
		Name:          "Family Suite",
		Description:   "Two bedrooms joined by a shared living room.",
		PricePerNight: 38000,
		Category:      models.CategorySuite,
		Capacity:      5,
		ImageURL:      "https://images.unsplash.com/photo-1591088398332-8a7791972843",
	},
	{
		Name:          "Royal Luxury Villa",
		Description:   "Private pool, butler service and a rooftop view of the palace.",
		PricePerNight: 95000,
		Category:      models.CategoryLuxury,
		Capacity:      4,
		ImageURL:      "https://images.unsplash.com/photo-1571896349842-33c89424de2d",
		IsFeatured:    true,
	},
}

func seedRooms(ctx context.Context, db *gorm.DB) error {
	rooms := repositories.NewRoomRepository(db)
	for _, r := range demoRooms {
		room := r
		if err := rooms.FirstOrCreateByName(ctx, &room); err != nil {
			return err
		}
	}
	return nil
}
