package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/config"
	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/repository/postgres"
)

// wilayaSeed is a wilaya with its base shipping price in DZD. Desk delivery
// uses the base price; home delivery adds the courier's door surcharge.
type wilayaSeed struct {
	id    string
	name  string
	price float64
}

const homeSurcharge = 200

var wilayaSeeds = []wilayaSeed{
	{"01", "أدرار", 800},
	{"02", "الشلف", 600},
	{"03", "الأغواط", 700},
	{"04", "أم البواقي", 650},
	{"05", "باتنة", 650},
	{"06", "بجاية", 600},
	{"07", "بسكرة", 700},
	{"08", "بشار", 800},
	{"09", "البليدة", 400},
	{"10", "البويرة", 500},
	{"11", "تمنراست", 1000},
	{"12", "تبسة", 750},
	{"13", "تلمسان", 650},
	{"14", "تيارت", 600},
	{"15", "تيزي وزو", 500},
	{"16", "الجزائر", 300},
	{"17", "الجلفة", 700},
	{"18", "جيجل", 650},
	{"19", "سطيف", 600},
	{"20", "سعيدة", 650},
	{"21", "سكيكدة", 650},
	{"22", "سيدي بلعباس", 650},
	{"23", "عنابة", 700},
	{"24", "قالمة", 700},
	{"25", "قسنطينة", 650},
	{"26", "المدية", 500},
	{"27", "مستغانم", 600},
	{"28", "المسيلة", 650},
	{"29", "معسكر", 600},
	{"30", "ورقلة", 800},
	{"31", "وهران", 500},
	{"32", "البيض", 700},
	{"33", "إليزي", 1000},
	{"34", "برج بوعريريج", 600},
	{"35", "بومرداس", 400},
	{"36", "الطارف", 750},
	{"37", "تندوف", 900},
	{"38", "تيسمسيلت", 650},
	{"39", "الوادي", 800},
	{"40", "خنشلة", 700},
	{"41", "سوق أهراس", 750},
	{"42", "تيبازة", 400},
	{"43", "ميلة", 650},
	{"44", "عين الدفلى", 550},
	{"45", "النعامة", 750},
	{"46", "عين تموشنت", 600},
	{"47", "غرداية", 750},
	{"48", "غليزان", 600},
	{"49", "تيميمون", 850},
	{"50", "برج باجي مختار", 900},
	{"51", "أولاد جلال", 750},
	{"52", "بني عباس", 850},
	{"53", "عين صالح", 900},
	{"54", "عين قزام", 950},
	{"55", "تقرت", 800},
	{"56", "جانت", 1000},
	{"57", "المقرية", 800},
	{"58", "المنيعة", 850},
}

func main() {
	force := flag.Bool("force", false, "overwrite an existing settings document")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	if existing, err := repos.Settings.Get(ctx); err == nil && existing != nil && !*force {
		fmt.Println("Settings document already exists, pass --force to overwrite")
		return
	}

	tiers := make([]domain.WilayaShipping, 0, len(wilayaSeeds))
	for _, w := range wilayaSeeds {
		tiers = append(tiers, domain.WilayaShipping{
			ID:        w.id,
			Name:      w.name,
			DeskPrice: w.price,
			HomePrice: w.price + homeSurcharge,
		})
	}

	settings := &domain.StoreSettings{
		StoreName:        "GYM DADA STORE",
		StoreDescription: "متجر المكملات الغذائية والملابس الرياضية",
		Contact: domain.ContactInfo{
			Phone: "+213123456789",
			Email: "info@gymdada.com",
		},
		Social: domain.SocialMedia{
			Facebook:  "https://facebook.com/gymdada",
			Instagram: "https://instagram.com/gymdada",
		},
		Shipping: domain.ShippingSettings{
			FreeShippingThreshold: 10000,
			DefaultDeskPrice:      500,
			DefaultHomePrice:      800,
		},
		PaymentMethods:       []string{"cod"},
		ExcludedWilayas:      []string{},
		WilayaShippingPrices: tiers,
	}

	if err := repos.Settings.Update(ctx, settings); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed settings: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Store settings seeded with %d shipping tiers\n", len(tiers))
}
