// Package taxonomy holds the canonical statement-group taxonomy that maps
// leaf accounts to Balance Sheet and Income Statement sections.
package taxonomy

// Group identifies a taxonomy leaf an account is reported under.
type Group string

// AccountSection is the coarse section recorded on an account.
type AccountSection string

const (
	SectionCurrent    AccountSection = "current"
	SectionNonCurrent AccountSection = "non_current"
	SectionOperating  AccountSection = "operating"
	SectionCost       AccountSection = "cost"
	SectionAdmin      AccountSection = "admin"
	SectionSelling    AccountSection = "selling"
	SectionFinancial  AccountSection = "financial"
	SectionOther      AccountSection = "other"
)

// Statement names a financial statement.
type Statement string

const (
	BalanceSheet    Statement = "balance_sheet"
	IncomeStatement Statement = "income_statement"
)

// SectionKey identifies a section of a statement.
type SectionKey string

// Balance sheet sections.
const (
	CurrentAssets         SectionKey = "current_assets"
	NonCurrentAssets      SectionKey = "non_current_assets"
	CurrentLiabilities    SectionKey = "current_liabilities"
	NonCurrentLiabilities SectionKey = "non_current_liabilities"
	Equity                SectionKey = "equity"
)

// Income statement sections.
const (
	Sales             SectionKey = "sales"
	CostOfSales       SectionKey = "cost_of_sales"
	AdminExpenses     SectionKey = "administrative_expenses"
	SellingExpenses   SectionKey = "selling_expenses"
	FinancialIncome   SectionKey = "financial_income"
	FinancialExpenses SectionKey = "financial_expenses"
	OtherIncome       SectionKey = "other_income"
	OtherExpenses     SectionKey = "other_expenses"
)

// Statement groups.
const (
	CashAndBanks           Group = "cash_and_banks"
	ShortTermInvestments   Group = "short_term_investments"
	TradeReceivables       Group = "trade_receivables"
	OtherReceivables       Group = "other_receivables"
	VATCredit              Group = "vat_credit"
	Inventories            Group = "inventories"
	LongTermReceivables    Group = "long_term_receivables"
	LongTermInvestments    Group = "long_term_investments"
	PropertyPlantEquipment Group = "property_plant_equipment"
	Intangibles            Group = "intangibles"

	TradePayables      Group = "trade_payables"
	BankLoans          Group = "bank_loans"
	PayrollLiabilities Group = "payroll_liabilities"
	TaxLiabilities     Group = "tax_liabilities"
	VATDebit           Group = "vat_debit"
	OtherLiabilities   Group = "other_liabilities"
	LongTermLoans      Group = "long_term_loans"
	Provisions         Group = "provisions"

	Capital           Group = "capital"
	CapitalAdjustment Group = "capital_adjustment"
	Reserves          Group = "reserves"
	RetainedEarnings  Group = "retained_earnings"

	SalesGroup             Group = "sales"
	CostOfSalesGroup       Group = "cost_of_sales"
	AdminExpensesGroup     Group = "administrative_expenses"
	SellingExpensesGroup   Group = "selling_expenses"
	FinancialIncomeGroup   Group = "financial_income"
	FinancialExpensesGroup Group = "financial_expenses"
	OtherIncomeGroup       Group = "other_income"
	OtherExpensesGroup     Group = "other_expenses"
)

// Def describes one taxonomy leaf.
type Def struct {
	Group     Group
	Label     string
	Statement Statement
	Section   SectionKey
}

// defs is ordered the way groups are presented and notes are numbered.
var defs = []Def{
	{CashAndBanks, "Caja y bancos", BalanceSheet, CurrentAssets},
	{ShortTermInvestments, "Inversiones temporarias", BalanceSheet, CurrentAssets},
	{TradeReceivables, "Créditos por ventas", BalanceSheet, CurrentAssets},
	{OtherReceivables, "Otros créditos", BalanceSheet, CurrentAssets},
	{VATCredit, "IVA crédito fiscal", BalanceSheet, CurrentAssets},
	{Inventories, "Bienes de cambio", BalanceSheet, CurrentAssets},
	{LongTermReceivables, "Créditos no corrientes", BalanceSheet, NonCurrentAssets},
	{LongTermInvestments, "Inversiones permanentes", BalanceSheet, NonCurrentAssets},
	{PropertyPlantEquipment, "Bienes de uso", BalanceSheet, NonCurrentAssets},
	{Intangibles, "Activos intangibles", BalanceSheet, NonCurrentAssets},

	{TradePayables, "Deudas comerciales", BalanceSheet, CurrentLiabilities},
	{BankLoans, "Préstamos", BalanceSheet, CurrentLiabilities},
	{PayrollLiabilities, "Remuneraciones y cargas sociales", BalanceSheet, CurrentLiabilities},
	{TaxLiabilities, "Cargas fiscales", BalanceSheet, CurrentLiabilities},
	{VATDebit, "IVA débito fiscal", BalanceSheet, CurrentLiabilities},
	{OtherLiabilities, "Otras deudas", BalanceSheet, CurrentLiabilities},
	{LongTermLoans, "Préstamos no corrientes", BalanceSheet, NonCurrentLiabilities},
	{Provisions, "Previsiones", BalanceSheet, NonCurrentLiabilities},

	{Capital, "Capital social", BalanceSheet, Equity},
	{CapitalAdjustment, "Ajuste de capital", BalanceSheet, Equity},
	{Reserves, "Reservas", BalanceSheet, Equity},
	{RetainedEarnings, "Resultados no asignados", BalanceSheet, Equity},

	{SalesGroup, "Ventas netas", IncomeStatement, Sales},
	{CostOfSalesGroup, "Costo de mercaderías vendidas", IncomeStatement, CostOfSales},
	{AdminExpensesGroup, "Gastos de administración", IncomeStatement, AdminExpenses},
	{SellingExpensesGroup, "Gastos de comercialización", IncomeStatement, SellingExpenses},
	{FinancialIncomeGroup, "Resultados financieros positivos", IncomeStatement, FinancialIncome},
	{FinancialExpensesGroup, "Resultados financieros negativos", IncomeStatement, FinancialExpenses},
	{OtherIncomeGroup, "Otros ingresos", IncomeStatement, OtherIncome},
	{OtherExpensesGroup, "Otros egresos", IncomeStatement, OtherExpenses},
}

var byGroup = func() map[Group]Def {
	m := make(map[Group]Def, len(defs))
	for _, d := range defs {
		m[d.Group] = d
	}
	return m
}()

var sectionLabels = map[SectionKey]string{
	CurrentAssets:         "Activo corriente",
	NonCurrentAssets:      "Activo no corriente",
	CurrentLiabilities:    "Pasivo corriente",
	NonCurrentLiabilities: "Pasivo no corriente",
	Equity:                "Patrimonio neto",
	Sales:                 "Ventas",
	CostOfSales:           "Costo de ventas",
	AdminExpenses:         "Gastos de administración",
	SellingExpenses:       "Gastos de comercialización",
	FinancialIncome:       "Ingresos financieros",
	FinancialExpenses:     "Gastos financieros",
	OtherIncome:           "Otros ingresos",
	OtherExpenses:         "Otros egresos",
}

// Lookup returns the definition of g.
func Lookup(g Group) (Def, bool) {
	d, ok := byGroup[g]
	return d, ok
}

// All returns every definition in presentation order.
func All() []Def {
	out := make([]Def, len(defs))
	copy(out, defs)
	return out
}

// ForSection returns the groups feeding key, in presentation order.
func ForSection(key SectionKey) []Def {
	var out []Def
	for _, d := range defs {
		if d.Section == key {
			out = append(out, d)
		}
	}
	return out
}

// Order returns the presentation index of g, or len(All()) when unknown.
func Order(g Group) int {
	for i, d := range defs {
		if d.Group == g {
			return i
		}
	}
	return len(defs)
}

// SectionLabel returns the display label of a statement section.
func SectionLabel(key SectionKey) string {
	if l, ok := sectionLabels[key]; ok {
		return l
	}
	return string(key)
}
