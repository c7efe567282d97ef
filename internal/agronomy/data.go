// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package agronomy

// Market prices are MSP / mandi averages and are not live.
var defaultCrops = []Crop{
	{Name: "Rice", Emoji: "🌾", Group: "Cereals", OptimalTemp: Range{20, 35}, OptimalRain: Range{150, 300}, OptimalPH: Range{5.5, 7.0}, IdealN: 120, IdealP: 60, IdealK: 40, MarketPrice: 2183},
	{Name: "Wheat", Emoji: "🌿", Group: "Cereals", OptimalTemp: Range{12, 25}, OptimalRain: Range{50, 120}, OptimalPH: Range{6.0, 7.5}, IdealN: 150, IdealP: 60, IdealK: 40, MarketPrice: 2275},
	{Name: "Maize", Emoji: "🌽", Group: "Cereals", OptimalTemp: Range{21, 30}, OptimalRain: Range{80, 200}, OptimalPH: Range{5.5, 7.5}, IdealN: 135, IdealP: 55, IdealK: 45, MarketPrice: 2090},
	{Name: "Sugarcane", Emoji: "🎋", Group: "Cash Crops", OptimalTemp: Range{25, 38}, OptimalRain: Range{150, 300}, OptimalPH: Range{6.0, 7.5}, IdealN: 150, IdealP: 80, IdealK: 80, MarketPrice: 315},
	{Name: "Cotton", Emoji: "☁️", Group: "Cash Crops", OptimalTemp: Range{25, 35}, OptimalRain: Range{80, 150}, OptimalPH: Range{6.0, 8.0}, IdealN: 100, IdealP: 50, IdealK: 50, MarketPrice: 6620},
	{Name: "Soybean", Emoji: "🫘", Group: "Oilseeds", OptimalTemp: Range{20, 30}, OptimalRain: Range{60, 150}, OptimalPH: Range{6.0, 7.0}, IdealN: 30, IdealP: 60, IdealK: 40, MarketPrice: 4600},
	{Name: "Groundnut", Emoji: "🥜", Group: "Oilseeds", OptimalTemp: Range{25, 35}, OptimalRain: Range{50, 120}, OptimalPH: Range{5.5, 7.0}, IdealN: 25, IdealP: 50, IdealK: 45, MarketPrice: 5850},
	{Name: "Lentil", Emoji: "🟤", Group: "Pulses", OptimalTemp: Range{15, 25}, OptimalRain: Range{30, 80}, OptimalPH: Range{6.0, 7.5}, IdealN: 20, IdealP: 45, IdealK: 20, MarketPrice: 6425},
	{Name: "Millet", Emoji: "🌱", Group: "Cereals", OptimalTemp: Range{25, 35}, OptimalRain: Range{30, 100}, OptimalPH: Range{5.5, 7.0}, IdealN: 80, IdealP: 40, IdealK: 40, MarketPrice: 2500},
	{Name: "Coconut", Emoji: "🥥", Group: "Cash Crops", OptimalTemp: Range{25, 32}, OptimalRain: Range{150, 300}, OptimalPH: Range{5.5, 7.0}, IdealN: 50, IdealP: 30, IdealK: 120, MarketPrice: 3200},
	{Name: "Tea", Emoji: "🍵", Group: "Cash Crops", OptimalTemp: Range{18, 28}, OptimalRain: Range{200, 400}, OptimalPH: Range{4.5, 6.0}, IdealN: 100, IdealP: 50, IdealK: 50, MarketPrice: 28000},
	{Name: "Apple", Emoji: "🍎", Group: "Cash Crops", OptimalTemp: Range{10, 22}, OptimalRain: Range{100, 200}, OptimalPH: Range{5.5, 6.8}, IdealN: 70, IdealP: 35, IdealK: 70, MarketPrice: 7500},
}

var defaultRegions = []Region{
	{Name: "Punjab", Lat: 31.15, Lon: 75.34, Yield: 4800, SoilHealth: 82, TopCrop: "Wheat", AvgTemp: 24.5, Humidity: 55, Rainfall: 650, WaterPH: 7.2},
	{Name: "Haryana", Lat: 29.06, Lon: 76.09, Yield: 4500, SoilHealth: 78, TopCrop: "Wheat", AvgTemp: 25.0, Humidity: 50, Rainfall: 550, WaterPH: 7.5},
	{Name: "Uttar Pradesh", Lat: 26.85, Lon: 80.91, Yield: 4200, SoilHealth: 72, TopCrop: "Rice", AvgTemp: 26.0, Humidity: 65, Rainfall: 1000, WaterPH: 7.0},
	{Name: "West Bengal", Lat: 22.99, Lon: 87.75, Yield: 3900, SoilHealth: 74, TopCrop: "Rice", AvgTemp: 27.0, Humidity: 78, Rainfall: 1600, WaterPH: 6.8},
	{Name: "Andhra Pradesh", Lat: 15.91, Lon: 79.74, Yield: 3800, SoilHealth: 73, TopCrop: "Rice", AvgTemp: 28.5, Humidity: 72, Rainfall: 900, WaterPH: 7.1},
	{Name: "Madhya Pradesh", Lat: 23.47, Lon: 77.95, Yield: 3600, SoilHealth: 68, TopCrop: "Soybean", AvgTemp: 25.5, Humidity: 55, Rainfall: 1150, WaterPH: 7.3},
	{Name: "Maharashtra", Lat: 19.75, Lon: 75.71, Yield: 3500, SoilHealth: 65, TopCrop: "Cotton", AvgTemp: 27.0, Humidity: 60, Rainfall: 1100, WaterPH: 7.4},
	{Name: "Karnataka", Lat: 15.32, Lon: 75.71, Yield: 3400, SoilHealth: 67, TopCrop: "Sugarcane", AvgTemp: 26.5, Humidity: 65, Rainfall: 1350, WaterPH: 6.9},
	{Name: "Tamil Nadu", Lat: 11.13, Lon: 78.66, Yield: 3300, SoilHealth: 69, TopCrop: "Rice", AvgTemp: 28.0, Humidity: 70, Rainfall: 950, WaterPH: 7.0},
	{Name: "Kerala", Lat: 10.85, Lon: 76.27, Yield: 3200, SoilHealth: 76, TopCrop: "Coconut", AvgTemp: 27.5, Humidity: 80, Rainfall: 3000, WaterPH: 6.5},
	{Name: "Gujarat", Lat: 22.26, Lon: 71.19, Yield: 3200, SoilHealth: 62, TopCrop: "Groundnut", AvgTemp: 27.5, Humidity: 50, Rainfall: 800, WaterPH: 7.6},
	{Name: "Bihar", Lat: 25.10, Lon: 85.31, Yield: 3100, SoilHealth: 60, TopCrop: "Maize", AvgTemp: 26.0, Humidity: 68, Rainfall: 1200, WaterPH: 7.1},
	{Name: "Odisha", Lat: 20.94, Lon: 84.80, Yield: 2900, SoilHealth: 58, TopCrop: "Rice", AvgTemp: 27.0, Humidity: 72, Rainfall: 1500, WaterPH: 6.8},
	{Name: "Assam", Lat: 26.20, Lon: 92.94, Yield: 2700, SoilHealth: 64, TopCrop: "Tea", AvgTemp: 24.0, Humidity: 82, Rainfall: 2800, WaterPH: 6.3},
	{Name: "Rajasthan", Lat: 27.02, Lon: 74.22, Yield: 2600, SoilHealth: 52, TopCrop: "Millet", AvgTemp: 28.0, Humidity: 35, Rainfall: 350, WaterPH: 8.0},
	{Name: "Telangana", Lat: 18.11, Lon: 79.02, Yield: 3500, SoilHealth: 70, TopCrop: "Cotton", AvgTemp: 28.0, Humidity: 60, Rainfall: 950, WaterPH: 7.2},
	{Name: "Chhattisgarh", Lat: 21.27, Lon: 81.87, Yield: 2800, SoilHealth: 56, TopCrop: "Rice", AvgTemp: 26.5, Humidity: 65, Rainfall: 1400, WaterPH: 6.9},
	{Name: "Jharkhand", Lat: 23.61, Lon: 85.28, Yield: 2500, SoilHealth: 54, TopCrop: "Rice", AvgTemp: 25.5, Humidity: 60, Rainfall: 1300, WaterPH: 7.0},
	{Name: "Uttarakhand", Lat: 30.07, Lon: 79.49, Yield: 2400, SoilHealth: 66, TopCrop: "Rice", AvgTemp: 18.0, Humidity: 55, Rainfall: 1500, WaterPH: 6.7},
	{Name: "Himachal Pradesh", Lat: 31.10, Lon: 77.17, Yield: 2200, SoilHealth: 70, TopCrop: "Apple", AvgTemp: 15.0, Humidity: 60, Rainfall: 1200, WaterPH: 6.5},
}

var defaultAdvice = map[string]Advice{
	AdviceLowN:   {Fertilizer: "Urea (46-0-0)", Dosage: "130–170 kg/ha", Note: "Apply in 2–3 split doses. First basal, rest at tillering & panicle."},
	AdviceHighN:  {Fertilizer: "Reduce Urea", Dosage: "Cut by 30–40%", Note: "Excess N causes lodging & pest susceptibility. Consider neem-coated urea."},
	AdviceLowP:   {Fertilizer: "DAP (18-46-0)", Dosage: "100–130 kg/ha", Note: "Apply full dose at sowing. P is immobile, band placement is ideal."},
	AdviceHighP:  {Fertilizer: "Reduce DAP / SSP", Dosage: "Cut by 25–35%", Note: "Excess P locks out Zinc. Add ZnSO4 if deficiency symptoms appear."},
	AdviceLowK:   {Fertilizer: "MOP (0-0-60)", Dosage: "80–100 kg/ha", Note: "Apply 50% basal + 50% at flowering. Critical for fruit & grain filling."},
	AdviceHighK:  {Fertilizer: "Reduce MOP", Dosage: "Cut by 20–30%", Note: "Excess K interferes with Mg & Ca uptake."},
	AdviceLowPH:  {Fertilizer: "Agricultural Lime (CaCO3)", Dosage: "2–4 tonnes/ha", Note: "Apply 2–3 weeks before sowing. Acidic soil limits nutrient availability."},
	AdviceHighPH: {Fertilizer: "Gypsum (CaSO4)", Dosage: "2–5 tonnes/ha", Note: "Reduces alkalinity. Add organic matter (FYM / compost) to buffer pH."},
}

var defaultPests = map[string][]Pest{
	"Cereals": {
		{Pest: "Stem Borer", Product: "Chlorantraniliprole 0.4% GR", Dosage: "10 kg/ha"},
		{Pest: "Brown Plant Hopper", Product: "Pymetrozine 50% WG", Dosage: "300 g/ha"},
		{Pest: "Blast", Product: "Tricyclazole 75% WP", Dosage: "300 g/ha"},
	},
	"Pulses": {
		{Pest: "Pod Borer", Product: "Emamectin Benzoate 5% SG", Dosage: "220 g/ha"},
		{Pest: "Wilt", Product: "Carbendazim 50% WP", Dosage: "1 kg/ha"},
		{Pest: "Aphids", Product: "Imidacloprid 17.8% SL", Dosage: "100 ml/ha"},
	},
	"Oilseeds": {
		{Pest: "White Grub", Product: "Chlorpyrifos 20% EC", Dosage: "2.5 L/ha"},
		{Pest: "Tikka Disease", Product: "Mancozeb 75% WP", Dosage: "2 kg/ha"},
		{Pest: "Jassids", Product: "Thiamethoxam 25% WG", Dosage: "100 g/ha"},
	},
	"Cash Crops": {
		{Pest: "Bollworm", Product: "Flubendiamide 39.35% SC", Dosage: "150 ml/ha"},
		{Pest: "RedRot", Product: "Carbendazim 50% WP", Dosage: "1 kg/ha"},
		{Pest: "Mealybug", Product: "Profenophos 50% EC", Dosage: "1 L/ha"},
	},
}
