// Package ofx imports OFX/QFX bank statements as yield estimator inputs.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/cultiva/internal/culture"
	"github.com/Veraticus/cultiva/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line that lost their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	// Leading "DD/MM " left behind by card payment labels.
	datePrefixRegex = regexp.MustCompile(`^\d{2}/\d{2}\s+`)
)

// typeKeywords maps normalized description keywords to record types.
// Checked in order; the first match wins.
var typeKeywords = []struct {
	recordType string
	keywords   []string
}{
	{model.TypeHarvest, []string{"recolte", "vente", "cooperative"}},
	{model.TypeInputs, []string{"engrais", "semence", "pesticide", "herbicide", "fongicide", "intrant", "npk", "uree"}},
	{model.TypeLabor, []string{"salaire", "ouvrier", "journalier", "main d'oeuvre", "main-d'oeuvre", "main d'œuvre", "main-d'œuvre"}},
}

// Statement is one account statement converted for the estimator.
type Statement struct {
	AccountID     string
	Currency      string
	Inputs        []model.PredictionInput
	TotalIncome   float64
	TotalExpenses float64
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be INFO, WARN or ERROR
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseStatements parses an OFX/QFX file into one Statement per account.
func (p *Parser) ParseStatements(ctx context.Context, reader io.Reader) ([]Statement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var statements []Statement

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			statements = append(statements,
				p.convertStatement(string(stmt.BankAcctFrom.AcctID), stmt.CurDef.String(), stmt.BankTranList))
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			statements = append(statements,
				p.convertStatement(string(stmt.CCAcctFrom.AcctID), stmt.CurDef.String(), stmt.BankTranList))
		}
	}

	total := 0
	for _, s := range statements {
		total += len(s.Inputs)
	}
	slog.Info("Parsed OFX file",
		"statements", len(statements),
		"total_transactions", total)

	return statements, nil
}

// ParseFile parses an OFX/QFX file and returns the estimator inputs of every
// statement in file order.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.PredictionInput, error) {
	statements, err := p.ParseStatements(ctx, reader)
	if err != nil {
		return nil, err
	}

	var inputs []model.PredictionInput
	for _, s := range statements {
		inputs = append(inputs, s.Inputs...)
	}
	return inputs, nil
}

// convertStatement converts the transactions of one statement and attaches the
// statement totals to each input so margin adjustments apply.
func (p *Parser) convertStatement(accountID, currency string, list *ofxgo.TransactionList) Statement {
	stmt := Statement{AccountID: accountID, Currency: currency}
	if list == nil {
		return stmt
	}

	for _, ofxTx := range list.Transactions {
		input := p.convertTransaction(ofxTx)
		if input.Direction == model.DirectionIncome {
			stmt.TotalIncome += input.Amount
		} else {
			stmt.TotalExpenses += input.Amount
		}
		stmt.Inputs = append(stmt.Inputs, input)
	}

	for i := range stmt.Inputs {
		stmt.Inputs[i].TotalIncome = model.Float64Ptr(stmt.TotalIncome)
		stmt.Inputs[i].TotalExpenses = model.Float64Ptr(stmt.TotalExpenses)
	}

	return stmt
}

// convertTransaction converts an OFX transaction to an estimator input.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) model.PredictionInput {
	// OFX uses negative amounts for debits
	amount, _ := ofxTx.TrnAmt.Float64()
	direction := model.DirectionIncome
	if amount < 0 {
		direction = model.DirectionExpense
		amount = -amount
	}

	description := p.extractDescription(ofxTx)

	return model.PredictionInput{
		Amount:      amount,
		Direction:   direction,
		Type:        InferType(description),
		Month:       int(ofxTx.DtPosted.Month()),
		Description: description,
	}
}

// extractDescription tries to get a clean counterparty label from OFX data.
func (p *Parser) extractDescription(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	prefixes := []string{
		"PRLV SEPA ",
		"VIR SEPA ",
		"VIR ",
		"VIREMENT ",
		"PRELEVEMENT ",
		"CB ",
		"CARTE ",
	}
	for _, prefix := range prefixes {
		if len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			name = name[len(prefix):]
			break
		}
	}

	return strings.TrimSpace(datePrefixRegex.ReplaceAllString(name, ""))
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "VIREMENT", "PRELEVEMENT", "PAIEMENT", "CARTE":
		return true
	}
	return false
}

// InferType guesses the record type from a free-text description. It returns
// "" when no keyword matches, which leaves the record to the generic
// income/expense rules.
func InferType(description string) string {
	key := culture.Normalize(description)
	if key == "" {
		return ""
	}

	for _, group := range typeKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(key, kw) {
				return group.recordType
			}
		}
	}
	return ""
}
