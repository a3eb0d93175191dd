// Copyright (c) 2021 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/hyperledger-labs/txnode
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package currency

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/hyperledger-labs/txnode"
)

// Define symbol and max decimals for ETH, because there is no token contract
// for ETH, from which these details can be fetched from.
const (
	// ETHSymbol is the symbol for ethereum's native currency ETH.
	ETHSymbol = "ETH"

	// ETHMaxDecimals is the maximum number of decimal places allowed in ETH representation.
	ETHMaxDecimals uint8 = 18

	// placesToRound is the number of decimal places in the printed amounts.
	placesToRound = 6
)

// ETH is the parser for amounts in ETH.
var ETH = New(ETHSymbol, ETHMaxDecimals)

type currency struct {
	symbol   string
	decimals decimal.Decimal
}

// New returns a parser for a currency with the given symbol, whose base unit
// is 10^-maxDecimals of the unit used in string representations.
func New(symbol string, maxDecimals uint8) txnode.Currency {
	return currency{
		symbol:   symbol,
		decimals: decimal.New(1, int32(maxDecimals)),
	}
}

// Parse parses the given amount string, converts it to the base unit and
// returns a big.Int representation of the value.
//
// The amount must be positive and cannot have more decimal places than the
// currency supports. Both decimal and exponential forms are accepted.
func (c currency) Parse(input string) (*big.Int, error) {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return nil, errors.Wrap(err, "invalid decimal string")
	}

	amountBaseUnit := amount.Mul(c.decimals)
	if amountBaseUnit.LessThan(decimal.NewFromInt(1)) {
		return nil, errors.Errorf("amount is too small, should be at least 1e-%d", c.decimals.Exponent())
	}
	if !amountBaseUnit.Equal(amountBaseUnit.Truncate(0)) {
		return nil, errors.Errorf("amount has more than %d decimal places", c.decimals.Exponent())
	}
	return amountBaseUnit.BigInt(), nil
}

// Print converts the input in base unit to the currency unit and returns a
// string representation of it. The returned string is rounded off to 6
// decimal places for visual representation.
func (c currency) Print(input *big.Int) string {
	amount := decimal.NewFromBigInt(input, 0)
	return amount.Div(c.decimals).StringFixedBank(placesToRound)
}

// Symbol returns the symbol of the currency.
func (c currency) Symbol() string {
	return c.symbol
}
