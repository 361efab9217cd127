package catalog

const (
	FormNewsletter  = "newsletter"
	FormReservation = "reservation"
	FormContact     = "contact"
	FormBooking     = "booking"
)

func DefaultSites() []Site {
	return []Site{
		{
			Slug:          "serenity-wellness",
			Name:          "Serenity Wellness Studio",
			Category:      CategoryWellness,
			GalleryPrefix: "wellness",
			Forms:         []string{FormBooking, FormNewsletter},
			Slots: []Slot{
				{Id: "hero", Title: "Morning Flow", Aspect: "16:9",
					Prompt: "Sunlit yoga studio with wooden floors, large windows, soft morning haze, minimalist plants, calm editorial photography"},
				{Id: "meditation", Title: "Meditation Room", Aspect: "4:3",
					Prompt: "Quiet meditation room with floor cushions, warm candlelight, linen curtains, muted earth tones"},
				{Id: "massage", Title: "Treatment Suite", Aspect: "4:3",
					Prompt: "Spa treatment suite, folded white towels, smooth river stones, eucalyptus, diffused natural light"},
				{Id: "team", Title: "Our Instructors", Aspect: "3:2",
					Prompt: "Three friendly wellness instructors in neutral activewear smiling in a bright studio, candid portrait"},
			},
		},
		{
			Slug:          "ember-roastery",
			Name:          "Ember Coffee Roastery",
			Category:      CategoryCoffee,
			GalleryPrefix: "roastery",
			Forms:         []string{FormNewsletter, FormContact},
			Slots: []Slot{
				{Id: "hero", Title: "Roasting Floor", Aspect: "16:9",
					Prompt: "Vintage drum coffee roaster releasing steam, copper details, moody warm light, industrial brick wall"},
				{Id: "beans", Title: "Single Origin", Aspect: "1:1",
					Prompt: "Macro shot of freshly roasted coffee beans spilling from a kraft bag onto dark slate"},
				{Id: "pour-over", Title: "Pour Over Bar", Aspect: "4:5",
					Prompt: "Barista pouring gooseneck kettle over ceramic dripper, morning light, shallow depth of field"},
				{Id: "cafe", Title: "The Cafe", Aspect: "3:2",
					Prompt: "Cozy specialty cafe interior with communal oak table, hanging bulbs, customers reading"},
			},
		},
		{
			Slug:          "luxe-salon",
			Name:          "Luxe Hair Salon",
			Category:      CategorySalon,
			GalleryPrefix: "salon",
			Forms:         []string{FormBooking},
			Slots: []Slot{
				{Id: "hero", Title: "Salon Floor", Aspect: "16:9",
					Prompt: "Modern hair salon with blush pink chairs, brass mirrors, marble counters, soft glamour lighting"},
				{Id: "color", Title: "Color Studio", Aspect: "4:5",
					Prompt: "Stylist applying balayage highlights, foils and brushes, close-up, editorial beauty photography"},
				{Id: "styling", Title: "Finished Looks", Aspect: "4:5",
					Prompt: "Glossy voluminous blowout hairstyle, back view, studio backdrop, high fashion"},
			},
		},
		{
			Slug:          "bright-dental",
			Name:          "Bright Dental Clinic",
			Category:      CategoryDental,
			GalleryPrefix: "dental",
			Forms:         []string{FormBooking, FormContact},
			Slots: []Slot{
				{Id: "hero", Title: "Welcome", Aspect: "16:9",
					Prompt: "Bright modern dental reception with white and mint interior, friendly receptionist, clean architecture"},
				{Id: "treatment", Title: "Treatment Room", Aspect: "3:2",
					Prompt: "State of the art dental treatment room, ergonomic chair, large window with greenery"},
				{Id: "team", Title: "Meet the Dentists", Aspect: "3:2",
					Prompt: "Two smiling dentists in scrubs standing in a clinic hallway, professional headshot style"},
			},
		},
		{
			Slug:          "trattoria-nonna",
			Name:          "Trattoria Nonna",
			Category:      CategoryRestaurant,
			GalleryPrefix: "restaurant",
			Forms:         []string{FormReservation, FormNewsletter},
			Slots: []Slot{
				{Id: "hero", Title: "Dining Room", Aspect: "16:9",
					Prompt: "Rustic Italian trattoria at dusk, checkered tablecloths, candles in wine bottles, warm glow"},
				{Id: "pasta", Title: "Handmade Pasta", Aspect: "1:1",
					Prompt: "Fresh tagliatelle with ragu on a ceramic plate, grated parmesan, overhead food photography"},
				{Id: "chef", Title: "The Kitchen", Aspect: "3:2",
					Prompt: "Chef tossing pasta in a pan over open flame, busy kitchen, motion blur"},
				{Id: "terrace", Title: "Terrace", Aspect: "3:2",
					Prompt: "Vine covered outdoor terrace with string lights and small tables, summer evening"},
			},
		},
		{
			Slug:          "golden-crumb",
			Name:          "Golden Crumb Bakery",
			Category:      CategoryBakery,
			GalleryPrefix: "bakery",
			Forms:         []string{FormNewsletter, FormContact},
			Slots: []Slot{
				{Id: "hero", Title: "Morning Bake", Aspect: "16:9",
					Prompt: "Artisan bakery counter filled with sourdough loaves and croissants, flour dust, early morning light"},
				{Id: "croissant", Title: "Croissants", Aspect: "1:1",
					Prompt: "Flaky butter croissant cut in half showing honeycomb layers, close-up"},
				{Id: "cakes", Title: "Celebration Cakes", Aspect: "4:5",
					Prompt: "Elegant tiered cake with fresh berries and edible flowers on a marble stand"},
			},
		},
		{
			Slug:          "atelier-form",
			Name:          "Atelier Form Architecture",
			Category:      CategoryArchitecture,
			GalleryPrefix: "architecture",
			Forms:         []string{FormContact},
			Slots: []Slot{
				{Id: "residence", Title: "Cliff Residence", Aspect: "16:9",
					Prompt: "Minimalist concrete house cantilevered over a coastal cliff, golden hour, architectural photography"},
				{Id: "interior", Title: "Light Well", Aspect: "4:5",
					Prompt: "Double height interior with skylight, white oak and raw concrete, long shadows"},
				{Id: "pavilion", Title: "Garden Pavilion", Aspect: "3:2",
					Prompt: "Timber garden pavilion with slender steel columns reflected in a still pond"},
				{Id: "model", Title: "Studio Models", Aspect: "1:1",
					Prompt: "Architectural scale models on a workbench, basswood and foam, soft studio light"},
			},
		},
		{
			Slug:          "lumen-photography",
			Name:          "Lumen Photography",
			Category:      CategoryPhotography,
			GalleryPrefix: "portfolio",
			Forms:         []string{FormBooking, FormContact},
			Slots: []Slot{
				{Id: "portrait", Title: "Portraits", Aspect: "4:5",
					Prompt: "Fine art portrait of a woman in window light, chiaroscuro, medium format film look"},
				{Id: "wedding", Title: "Weddings", Aspect: "3:2",
					Prompt: "Candid wedding couple laughing under a tree at sunset, warm tones"},
				{Id: "landscape", Title: "Landscapes", Aspect: "16:9",
					Prompt: "Misty mountain valley at sunrise, layered ridgelines, muted pastel palette"},
				{Id: "street", Title: "Street", Aspect: "3:2",
					Prompt: "Black and white street photography, rainy city crossing, umbrellas, reflections"},
			},
		},
		{
			Slug:          "saas-landing",
			Name:          "Launchpad SaaS Landing",
			Category:      CategorySaaS,
			GalleryPrefix: "saas-landing",
			Forms:         []string{FormNewsletter, FormContact},
			Slots: []Slot{
				{Id: "hero", Title: "Product Hero", Aspect: "16:9",
					Prompt: "Floating laptop showing a clean analytics dashboard, gradient purple background, 3D render"},
				{Id: "feature-1", Title: "Automations", Aspect: "4:3",
					Prompt: "Abstract isometric illustration of connected workflow nodes, soft gradients"},
				{Id: "feature-2", Title: "Collaboration", Aspect: "4:3",
					Prompt: "Diverse team collaborating around a large screen in a bright office, candid"},
			},
		},
		{
			Slug:          "saas-dashboard",
			Name:          "Pulse Dashboard Demo",
			Category:      CategorySaaS,
			GalleryPrefix: "saas-dashboard",
			Forms:         []string{FormNewsletter},
			Slots: []Slot{
				{Id: "avatar", Title: "Workspace Avatar", Aspect: "1:1",
					Prompt: "Minimal geometric logo mark, teal and navy, flat vector"},
				{Id: "empty-state", Title: "Empty State", Aspect: "4:3",
					Prompt: "Friendly illustration of a rocket waiting on a launchpad, pastel flat style"},
			},
		},
	}
}
