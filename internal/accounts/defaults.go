package accounts

import (
	"github.com/contalivre/contalivre/internal/code"
	"github.com/contalivre/contalivre/internal/model"
	tx "github.com/contalivre/contalivre/internal/taxonomy"
)

// DefaultChart returns the default chart of accounts. Every entity type
// starts from the commercial chart; entityType is kept in the config only.
func DefaultChart() []model.Account {
	return commercialChart()
}

type flag int

const (
	header flag = 1 << iota
	contra
)

func acct(c, name string, kind model.AccountKind, section tx.AccountSection, group tx.Group, flags flag) model.Account {
	return model.Account{
		ID:             c,
		Code:           c,
		Name:           name,
		Kind:           kind,
		Section:        section,
		StatementGroup: group,
		NormalSide:     model.DefaultSide(kind, flags&contra != 0),
		IsHeader:       flags&header != 0,
		IsContra:       flags&contra != 0,
		ParentID:       code.Parent(c),
	}
}

func commercialChart() []model.Account {
	const (
		A  = model.KindAsset
		L  = model.KindLiability
		E  = model.KindEquity
		I  = model.KindIncome
		X  = model.KindExpense
		C  = tx.SectionCurrent
		NC = tx.SectionNonCurrent
	)
	return []model.Account{
		acct("1", "Activo", A, "", "", header),
		acct("1.1", "Activo corriente", A, C, "", header),
		acct("1.1.01", "Caja y bancos", A, C, tx.CashAndBanks, header),
		acct("1.1.01.01", "Caja", A, C, tx.CashAndBanks, 0),
		acct("1.1.01.02", "Banco cuenta corriente", A, C, tx.CashAndBanks, 0),
		acct("1.1.01.03", "Moneda extranjera", A, C, tx.CashAndBanks, 0),
		acct("1.1.02", "Créditos por ventas", A, C, tx.TradeReceivables, header),
		acct("1.1.02.01", "Deudores por ventas", A, C, tx.TradeReceivables, 0),
		acct("1.1.02.02", "Documentos a cobrar", A, C, tx.TradeReceivables, 0),
		acct("1.1.02.03", "Previsión para deudores incobrables", A, C, tx.TradeReceivables, contra),
		acct("1.1.03", "Otros créditos", A, C, tx.OtherReceivables, header),
		acct("1.1.03.01", "IVA crédito fiscal", A, C, tx.VATCredit, 0),
		acct("1.1.03.02", "Anticipos de impuestos", A, C, tx.OtherReceivables, 0),
		acct("1.1.04", "Bienes de cambio", A, C, tx.Inventories, header),
		acct("1.1.04.01", "Mercaderías", A, C, tx.Inventories, 0),
		acct("1.2", "Activo no corriente", A, NC, "", header),
		acct("1.2.01", "Inversiones permanentes", A, NC, tx.LongTermInvestments, header),
		acct("1.2.01.01", "Participaciones en sociedades", A, NC, tx.LongTermInvestments, 0),
		acct("1.2.02", "Bienes de uso", A, NC, tx.PropertyPlantEquipment, header),
		acct("1.2.02.01", "Rodados", A, NC, tx.PropertyPlantEquipment, 0),
		acct("1.2.02.02", "Muebles y útiles", A, NC, tx.PropertyPlantEquipment, 0),
		acct("1.2.02.03", "Inmuebles", A, NC, tx.PropertyPlantEquipment, 0),
		acct("1.2.02.90", "Amortización acumulada bienes de uso", A, NC, tx.PropertyPlantEquipment, contra),
		acct("1.2.03", "Activos intangibles", A, NC, tx.Intangibles, header),
		acct("1.2.03.01", "Marcas y patentes", A, NC, tx.Intangibles, 0),

		acct("2", "Pasivo", L, "", "", header),
		acct("2.1", "Pasivo corriente", L, C, "", header),
		acct("2.1.01", "Deudas comerciales", L, C, tx.TradePayables, header),
		acct("2.1.01.01", "Proveedores", L, C, tx.TradePayables, 0),
		acct("2.1.01.02", "Documentos a pagar", L, C, tx.TradePayables, 0),
		acct("2.1.02", "Préstamos", L, C, tx.BankLoans, header),
		acct("2.1.02.01", "Préstamos bancarios", L, C, tx.BankLoans, 0),
		acct("2.1.03", "Remuneraciones y cargas sociales", L, C, tx.PayrollLiabilities, header),
		acct("2.1.03.01", "Sueldos a pagar", L, C, tx.PayrollLiabilities, 0),
		acct("2.1.03.02", "Cargas sociales a pagar", L, C, tx.PayrollLiabilities, 0),
		acct("2.1.04", "Cargas fiscales", L, C, tx.TaxLiabilities, header),
		acct("2.1.04.01", "IVA débito fiscal", L, C, tx.VATDebit, 0),
		acct("2.1.04.02", "Impuesto a las ganancias a pagar", L, C, tx.TaxLiabilities, 0),
		acct("2.2", "Pasivo no corriente", L, NC, "", header),
		acct("2.2.01", "Préstamos no corrientes", L, NC, tx.LongTermLoans, header),
		acct("2.2.01.01", "Préstamos bancarios a largo plazo", L, NC, tx.LongTermLoans, 0),

		acct("3", "Patrimonio neto", E, "", "", header),
		acct("3.1", "Aportes de los propietarios", E, "", "", header),
		acct("3.1.01", "Capital social", E, "", tx.Capital, 0),
		acct("3.1.02", "Ajuste de capital", E, "", tx.CapitalAdjustment, 0),
		acct("3.2", "Reservas", E, "", "", header),
		acct("3.2.01", "Reserva legal", E, "", tx.Reserves, 0),
		acct("3.3", "Resultados acumulados", E, "", "", header),
		acct("3.3.01", "Resultados no asignados", E, "", tx.RetainedEarnings, 0),

		acct("4", "Ingresos", I, "", "", header),
		acct("4.1", "Ventas", I, tx.SectionOperating, "", header),
		acct("4.1.01", "Ventas", I, tx.SectionOperating, tx.SalesGroup, 0),
		acct("4.1.02", "Devoluciones sobre ventas", I, tx.SectionOperating, tx.SalesGroup, contra),
		acct("4.2", "Ingresos financieros", I, tx.SectionFinancial, "", header),
		acct("4.2.01", "Intereses ganados", I, tx.SectionFinancial, tx.FinancialIncomeGroup, 0),
		acct("4.2.02", "Resultado por exposición a la inflación (RECPAM)", I, tx.SectionFinancial, tx.FinancialIncomeGroup, 0),
		acct("4.2.03", "Resultado por tenencia", I, tx.SectionFinancial, tx.FinancialIncomeGroup, 0),
		acct("4.3", "Otros ingresos", I, tx.SectionOther, "", header),
		acct("4.3.01", "Resultado venta bienes de uso", I, tx.SectionOther, tx.OtherIncomeGroup, 0),

		acct("5", "Egresos", X, "", "", header),
		acct("5.1", "Costo de ventas", X, tx.SectionCost, "", header),
		acct("5.1.01", "Costo de mercaderías vendidas", X, tx.SectionCost, tx.CostOfSalesGroup, 0),
		acct("5.2", "Gastos de administración", X, tx.SectionAdmin, "", header),
		acct("5.2.01", "Sueldos y jornales", X, tx.SectionAdmin, tx.AdminExpensesGroup, 0),
		acct("5.2.02", "Cargas sociales", X, tx.SectionAdmin, tx.AdminExpensesGroup, 0),
		acct("5.2.03", "Alquileres", X, tx.SectionAdmin, tx.AdminExpensesGroup, 0),
		acct("5.2.04", "Amortización bienes de uso", X, tx.SectionAdmin, tx.AdminExpensesGroup, 0),
		acct("5.3", "Gastos de comercialización", X, tx.SectionSelling, "", header),
		acct("5.3.01", "Publicidad", X, tx.SectionSelling, tx.SellingExpensesGroup, 0),
		acct("5.3.02", "Fletes", X, tx.SectionSelling, tx.SellingExpensesGroup, 0),
		acct("5.3.03", "Deudores incobrables", X, tx.SectionSelling, tx.SellingExpensesGroup, 0),
		acct("5.4", "Gastos financieros", X, tx.SectionFinancial, "", header),
		acct("5.4.01", "Intereses pagados", X, tx.SectionFinancial, tx.FinancialExpensesGroup, 0),
		acct("5.5", "Otros egresos", X, tx.SectionOther, "", header),
		acct("5.5.01", "Otros egresos", X, tx.SectionOther, tx.OtherExpensesGroup, 0),
	}
}
