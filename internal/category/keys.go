package category

// Category keys shared by every chart of accounts variant.
const (
	ServiceIncome       = "service_income"
	ReducedRateIncome   = "reduced_rate_income"
	GoodsIncome         = "goods_income"
	PrepaymentIncome    = "prepayment_income"
	RefundIncome        = "refund_income"
	TaxFreeIncome       = "tax_free_income"
	SmallBusinessIncome = "small_business_income"
	AssetSaleIncome     = "asset_sale_income"
	InterestIncome      = "interest_income"
	OtherIncome         = "other_income"
	VATRefund           = "vat_refund"

	GoodsPurchase        = "goods_purchase"
	GoodsPurchaseReduced = "goods_purchase_reduced"
	Subcontractor        = "subcontractor"
	Wages                = "wages"
	SocialSecurity       = "social_security"
	Rent                 = "rent"
	Utilities            = "utilities"
	Insurance            = "insurance"
	Memberships          = "memberships"
	Subscriptions        = "subscriptions"
	Software             = "software"
	OfficeSupplies       = "office_supplies"
	Phone                = "phone"
	Internet             = "internet"
	Postage              = "postage"
	WebsiteMaintenance   = "website_maintenance"
	OnlineAdvertising    = "online_advertising"
	PrintAdvertising     = "print_advertising"
	BankFees             = "bank_fees"
	LegalAdvice          = "legal_advice"
	Accounting           = "accounting"
	Training             = "training"
	Repairs              = "repairs"
	VehicleFuel          = "vehicle_fuel"
	VehicleRepairs       = "vehicle_repairs"
	VehicleInsurance     = "vehicle_insurance"
	VehicleTax           = "vehicle_tax"
	VehicleLeasing       = "vehicle_leasing"
	PublicTransport      = "public_transport"
	TravelAccommodation  = "travel_accommodation"
	TravelMeals          = "travel_meals"
	Entertainment        = "entertainment"
	Gifts                = "gifts"
	Depreciation         = "depreciation"
	LowValueAssets       = "low_value_assets"
	InterestExpense      = "interest_expense"
	TradeTax             = "trade_tax"
	OtherTax             = "other_tax"
	VATPayment           = "vat_payment"
	OtherExpense         = "other_expense"

	PrivateWithdrawal = "private_withdrawal"
	PrivateDeposit    = "private_deposit"
	PrivateTax        = "private_tax"
	PrivateDonations  = "private_donations"
)
