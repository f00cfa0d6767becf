package cmd

import (
	"context"
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/dish"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"

	"github.com/google/uuid"
)

type menuItem struct {
	name        string
	description string
	price       string
	available   bool
}

var defaultMenu = []menuItem{
	{"Margherita Pizza", "Classic pizza with fresh tomato sauce, mozzarella, and basil", "1200.00", true},
	{"Pepperoni Pizza", "Spicy pepperoni with mozzarella and tomato sauce", "1400.00", true},
	{"Quattro Stagioni", "Four seasons pizza with mushrooms, artichokes, ham, and olives", "1600.00", true},
	{"Hawaiian Pizza", "Ham and pineapple with mozzarella", "1350.00", false},
	{"Classic Cheeseburger", "Beef patty with cheddar cheese, lettuce, tomato, and onion", "1000.00", true},
	{"Chicken Deluxe", "Grilled chicken breast with avocado and bacon", "1150.00", true},
	{"Veggie Burger", "Plant-based patty with fresh vegetables", "950.00", true},
	{"Caesar Salad", "Crisp romaine lettuce with caesar dressing and croutons", "800.00", true},
	{"Greek Salad", "Fresh vegetables with feta cheese and olive oil", "750.00", true},
	{"Spaghetti Carbonara", "Traditional Italian pasta with eggs, cheese, and pancetta", "1100.00", true},
	{"Fettuccine Alfredo", "Creamy white sauce with parmesan cheese", "1050.00", false},
	{"Tiramisu", "Classic Italian dessert with coffee and mascarpone", "600.00", true},
	{"Chocolate Lava Cake", "Warm chocolate cake with molten center", "650.00", true},
	{"Fresh Orange Juice", "Freshly squeezed orange juice", "300.00", true},
	{"Iced Coffee", "Cold brew coffee with ice", "350.00", true},
}

// menuNamespace derives stable dish IDs from dish names, so reseeding
// updates dishes in place instead of duplicating them.
var menuNamespace = uuid.MustParse("6f1c2a52-4b8e-4d55-9a3e-1f0c8b7d2e41")

// SeedMenu upserts the default menu and returns the number of dishes written.
func SeedMenu(ctx context.Context, dishes ports.DishRepository) (int, error) {
	var seeded int
	var err error
	for _, item := range defaultMenu {
		d, buildErr := item.build()
		if buildErr != nil {
			err = errors.Join(err, buildErr)
			continue
		}
		if addErr := dishes.Add(ctx, d); addErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to seed %q: %w", item.name, addErr))
			continue
		}
		seeded++
	}
	return seeded, err
}

// DishID returns the ID SeedMenu assigns to the named dish.
func DishID(name string) (kernel.UUID, error) {
	id := uuid.NewSHA1(menuNamespace, []byte(name))
	return kernel.UUIDFromBytes(id[:])
}

func (m menuItem) build() (*dish.Dish, error) {
	id, err := DishID(m.name)
	if err != nil {
		return nil, err
	}

	price, err := kernel.MoneyFromString(m.price)
	if err != nil {
		return nil, err
	}

	return dish.NewDish(id, m.name, m.description, price, m.available)
}
