// Package parser implements a recursive-descent parser over the DFRS
// token stream, producing the typed AST described in spec.md §3/§4.D.
package parser

import (
	"strconv"

	"github.com/dfrs-lang/dfrsc/internal/ast"
	"github.com/dfrs-lang/dfrsc/internal/lexer"
	"github.com/dfrs-lang/dfrsc/internal/token"
)

// Parser consumes a pre-lexed token stream. Variable scopes declared by a
// VarDecl anywhere in the file are visible to every later %name reference
// in the file (spec.md leaves cross-body visibility unspecified; see
// DESIGN.md for the decision).
type Parser struct {
	toks []token.Token
	pos  int
	vars map[string]token.VariableScope
}

// Parse tokenizes src and parses it into a FileNode, or returns the first
// lexical or syntactic error encountered (spec.md §1: "compilation stops
// on first error per file").
func Parse(src string) (*ast.FileNode, error) {
	toks, lexErr := lexer.Tokenize(src)
	if lexErr != nil {
		return nil, lexErr
	}
	p := &Parser{toks: toks, vars: map[string]token.VariableScope{}}
	return p.parseFile()
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}
func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(kinds ...token.Kind) (token.Token, error) {
	cur := p.cur()
	for _, k := range kinds {
		if cur.Kind == k {
			return p.advance(), nil
		}
	}
	return token.Token{}, &Error{Kind: InvalidToken, Pos: cur.Start, Found: cur.Kind, Expected: kinds}
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) parseFile() (*ast.FileNode, error) {
	file := &ast.FileNode{}
	start := p.cur().Start
	for !p.at(token.EOF) {
		switch {
		case p.at(token.AT):
			ev, err := p.parseEvent()
			if err != nil {
				return nil, err
			}
			file.Events = append(file.Events, ev)
		case p.at(token.IDENT) && p.cur().Literal == "fn":
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			file.Functions = append(file.Functions, fn)
		default:
			return nil, &Error{Kind: InvalidToken, Pos: p.cur().Start, Found: p.cur().Kind, Expected: []token.Kind{token.AT, token.IDENT}}
		}
	}
	file.Span = token.Span{Start: start, End: p.cur().Start}
	return file, nil
}

func (p *Parser) parseEvent() (*ast.EventNode, error) {
	start := p.cur().Start
	if _, err := p.expect(token.AT); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	nameEnd := nameTok.End
	cancelled := false
	if p.at(token.BANG) {
		p.advance()
		cancelled = true
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	exprs, err := p.parseExpressions()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.EventNode{
		Event:       nameTok.Literal,
		Expressions: exprs,
		Cancelled:   cancelled,
		Span:        token.Span{Start: start, End: end.End},
		NameEndSpan: token.Span{Start: nameEnd, End: nameEnd},
	}, nil
}

func (p *Parser) parseFunction() (*ast.FunctionNode, error) {
	start := p.cur().Start
	p.advance() // 'fn'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.FunctionParamNode
	if !p.at(token.RPAREN) {
		for {
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	exprs, err := p.parseExpressions()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionNode{
		Name:        nameTok.Literal,
		Params:      params,
		Expressions: exprs,
		Span:        token.Span{Start: start, End: end.End},
		NameEndSpan: token.Span{Start: nameTok.End, End: nameTok.End},
	}, nil
}

func (p *Parser) parseParam() (*ast.FunctionParamNode, error) {
	start := p.cur().Start
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	optional, multiple := false, false
	switch {
	case p.at(token.STAR):
		p.advance()
		multiple = true
	case p.at(token.QUESTION):
		p.advance()
		optional = true
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	typTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	typ, ok := token.ParseType(typTok.Literal)
	if !ok {
		return nil, &Error{Kind: InvalidType, Pos: typTok.Start}
	}
	var def *ast.ArgValue
	if p.at(token.EQUAL) {
		p.advance()
		v, err := p.parseLiteralValue()
		if err != nil {
			return nil, err
		}
		def = v
	}
	return &ast.FunctionParamNode{
		Name:     nameTok.Literal,
		Type:     typ,
		Optional: optional,
		Multiple: multiple,
		Default:  def,
		Span:     token.Span{Start: start, End: p.toks[p.pos-1].End},
	}, nil
}

// parseLiteralValue parses a parameter default. It accepts every form
// parseArgValue does: number, string, text, compound constructor, and also
// variable references and game values.
func (p *Parser) parseLiteralValue() (*ast.ArgValue, error) {
	v, _, err := p.parseArgValue()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (p *Parser) parseExpressions() ([]ast.ExpressionNode, error) {
	var exprs []ast.ExpressionNode
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func (p *Parser) parseExpression() (ast.ExpressionNode, error) {
	start := p.cur().Start

	if p.at(token.IDENT) && p.cur().Literal == "repeat" {
		r, err := p.parseRepeat()
		if err != nil {
			return ast.ExpressionNode{}, err
		}
		return ast.ExpressionNode{Repeat: r, Span: r.Span}, nil
	}

	if p.at(token.IDENT) {
		if _, ok := token.ParseScope(p.cur().Literal); ok && p.peek().Kind == token.IDENT {
			v, err := p.parseVarDecl()
			if err != nil {
				return ast.ExpressionNode{}, err
			}
			return ast.ExpressionNode{Variable: v, Span: v.Span}, nil
		}
	}

	inverted := false
	if p.at(token.BANG) {
		inverted = true
		p.advance()
	}

	if p.at(token.IDENT) {
		_, isCond := token.ParseConditionalKind(p.cur().Literal)
		_, isAction := token.ParseActionKind(p.cur().Literal)
		if (isCond || isAction) && p.looksLikeKindedCall() {
			// p/e/g/v prefixes are shared between actions and conditionals;
			// a trailing '{' after the arg list is what distinguishes a
			// conditional block from a bare action call.
			if isCond && p.kindedCallHasBlock() {
				c, err := p.parseConditional(inverted)
				if err != nil {
					return ast.ExpressionNode{}, err
				}
				return ast.ExpressionNode{Conditional: c, Span: c.Span}, nil
			}
			if isAction && !inverted {
				a, err := p.parseAction()
				if err != nil {
					return ast.ExpressionNode{}, err
				}
				return ast.ExpressionNode{Action: a, Span: a.Span}, nil
			}
		}
	}

	if inverted {
		return ast.ExpressionNode{}, &Error{Kind: InvalidCall, Pos: start}
	}

	if !p.at(token.IDENT) {
		return ast.ExpressionNode{}, &Error{Kind: InvalidToken, Pos: start, Found: p.cur().Kind, Expected: []token.Kind{token.IDENT, token.BANG, token.RBRACE}}
	}

	if p.peek().Kind == token.LPAREN {
		c, err := p.parseCall()
		if err != nil {
			return ast.ExpressionNode{}, err
		}
		return ast.ExpressionNode{Call: c, Span: c.Span}, nil
	}

	return ast.ExpressionNode{}, &Error{Kind: InvalidCall, Pos: start}
}

// looksLikeKindedCall reports whether the parser's current position is at
// an identifier that begins a `Kind selector? ':' ident (` header, without
// consuming any tokens.
func (p *Parser) looksLikeKindedCall() bool {
	i := p.pos + 1
	if i < len(p.toks) && p.toks[i].Kind == token.AT {
		i += 2 // '@' selector-ident
	}
	return i < len(p.toks) && p.toks[i].Kind == token.COLON
}

// kindedCallHasBlock scans ahead from the current `Kind` token, past the
// selector, name, and parenthesized arg list, to see whether a '{' follows
// the matching ')'. It does not consume any tokens.
func (p *Parser) kindedCallHasBlock() bool {
	i := p.pos + 1
	if i < len(p.toks) && p.toks[i].Kind == token.AT {
		i += 2
	}
	if i >= len(p.toks) || p.toks[i].Kind != token.COLON {
		return false
	}
	i++ // ':'
	if i >= len(p.toks) || p.toks[i].Kind != token.IDENT {
		return false
	}
	i++ // name
	if i >= len(p.toks) || p.toks[i].Kind != token.LPAREN {
		return false
	}
	depth := 0
	for ; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				i++
				return i < len(p.toks) && p.toks[i].Kind == token.LBRACE
			}
		}
	}
	return false
}

func (p *Parser) parseSelector() (token.Selector, token.Span, error) {
	if !p.at(token.AT) {
		return token.SelectorDefault, token.Span{}, nil
	}
	start := p.cur().Start
	p.advance()
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return token.SelectorDefault, token.Span{}, err
	}
	sel, ok := token.ParseSelector(nameTok.Literal)
	if !ok {
		return token.SelectorDefault, token.Span{}, &Error{Kind: InvalidToken, Pos: nameTok.Start, Found: nameTok.Kind}
	}
	return sel, token.Span{Start: start, End: nameTok.End}, nil
}

func (p *Parser) parseAction() (*ast.ActionNode, error) {
	start := p.cur().Start
	kindTok := p.advance()
	kind, _ := token.ParseActionKind(kindTok.Literal)
	sel, selSpan, err := p.parseSelector()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	args, _, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &ast.ActionNode{
		ActionType:   kind,
		Selector:     sel,
		Name:         nameTok.Literal,
		Args:         args,
		Span:         token.Span{Start: start, End: p.toks[p.pos-1].End},
		SelectorSpan: selSpan,
	}, nil
}

func (p *Parser) parseConditional(inverted bool) (*ast.ConditionalNode, error) {
	start := p.cur().Start
	kindTok := p.advance()
	kind, _ := token.ParseConditionalKind(kindTok.Literal)
	sel, selSpan, err := p.parseSelector()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	args, _, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	body, err := p.parseExpressions()
	if err != nil {
		return nil, err
	}
	endTok, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	var elseBody []ast.ExpressionNode
	if p.at(token.IDENT) && p.cur().Literal == "else" {
		p.advance()
		if _, err := p.expect(token.LBRACE); err != nil {
			return nil, err
		}
		elseBody, err = p.parseExpressions()
		if err != nil {
			return nil, err
		}
		endTok, err = p.expect(token.RBRACE)
		if err != nil {
			return nil, err
		}
	}
	return &ast.ConditionalNode{
		ConditionalType: kind,
		Selector:        sel,
		Name:            nameTok.Literal,
		Args:            args,
		Inverted:        inverted,
		Expressions:     body,
		ElseExpressions: elseBody,
		Span:            token.Span{Start: start, End: endTok.End},
		SelectorSpan:    selSpan,
	}, nil
}

func (p *Parser) parseCall() (*ast.CallNode, error) {
	start := p.cur().Start
	nameTok := p.advance()
	args, _, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &ast.CallNode{
		Name: nameTok.Literal,
		Args: args,
		Span: token.Span{Start: start, End: p.toks[p.pos-1].End},
	}, nil
}

func (p *Parser) parseRepeat() (*ast.RepeatNode, error) {
	start := p.cur().Start
	p.advance() // 'repeat'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	args, _, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	body, err := p.parseExpressions()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.RepeatNode{
		Name:        nameTok.Literal,
		Args:        args,
		Expressions: body,
		Span:        token.Span{Start: start, End: end.End},
	}, nil
}

func (p *Parser) parseVarDecl() (*ast.VariableNode, error) {
	start := p.cur().Start
	scopeTok := p.advance()
	scope, _ := token.ParseScope(scopeTok.Literal)
	dfrsTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQUAL); err != nil {
		return nil, err
	}
	dfTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	p.vars[dfrsTok.Literal] = scope
	return &ast.VariableNode{
		DFRSName: dfrsTok.Literal,
		DFName:   dfTok.Literal,
		VarType:  scope,
		Span:     token.Span{Start: start, End: dfTok.End},
	}, nil
}

// parseArgList parses a parenthesized, comma-separated argument list. It
// returns the parsed args and whether any argument was a nested
// Condition (relevant to the caller only for diagnostics; validation of
// "only as args[0]" happens in the validator).
func (p *Parser) parseArgList() ([]ast.Arg, bool, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, false, err
	}
	var args []ast.Arg
	hasCondition := false
	if !p.at(token.RPAREN) {
		idx := 0
		for {
			arg, err := p.parseArg(idx)
			if err != nil {
				return nil, false, err
			}
			if arg.Value.Kind == ast.ValCondition {
				hasCondition = true
			} else {
				idx++
			}
			args = append(args, arg)
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, false, err
	}
	return dedupeTags(args), hasCondition, nil
}

// dedupeTags keeps only the last occurrence of each repeated tag name
// (spec.md §8 "Boundary cases": "tag repeated → parser keeps the last").
func dedupeTags(args []ast.Arg) []ast.Arg {
	lastIdx := make(map[string]int)
	for i, a := range args {
		if a.Value.Kind == ast.ValTag {
			lastIdx[a.Value.Tag.Name] = i
		}
	}
	out := make([]ast.Arg, 0, len(args))
	for i, a := range args {
		if a.Value.Kind == ast.ValTag && lastIdx[a.Value.Tag.Name] != i {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (p *Parser) parseArg(idx int) (ast.Arg, error) {
	start := p.cur().Start

	// name=value tag, only when followed directly by '='.
	if p.at(token.IDENT) && p.peek().Kind == token.EQUAL {
		nameTok := p.advance()
		p.advance() // '='
		valTok, err := p.expect(token.IDENT, token.STRINGLIT, token.INT, token.FLOAT)
		if err != nil {
			return ast.Arg{}, err
		}
		return ast.Arg{
			Value: ast.ArgValue{Kind: ast.ValTag, Tag: ast.Tag{
				Name:      nameTok.Literal,
				Value:     valTok.Literal,
				ValueSpan: token.Span{Start: valTok.Start, End: valTok.End},
			}},
			Index:   idx,
			ArgType: token.TypeAny,
			Span:    token.Span{Start: start, End: valTok.End},
		}, nil
	}

	// nested conditional-as-argument: '!'? CondKind selector? ':' ident '(' ArgList? ')'
	inverted := false
	if p.at(token.BANG) {
		inverted = true
		p.advance()
	}
	if p.at(token.IDENT) {
		if kind, ok := token.ParseConditionalKind(p.cur().Literal); ok && p.looksLikeKindedCall() {
			kindTok := p.advance()
			_ = kindTok
			sel, _, err := p.parseSelector()
			if err != nil {
				return ast.Arg{}, err
			}
			if _, err := p.expect(token.COLON); err != nil {
				return ast.Arg{}, err
			}
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return ast.Arg{}, err
			}
			innerArgs, _, err := p.parseArgList()
			if err != nil {
				return ast.Arg{}, err
			}
			end := p.toks[p.pos-1].End
			return ast.Arg{
				Value: ast.ArgValue{Kind: ast.ValCondition, Condition: ast.Condition{
					Name:            nameTok.Literal,
					Args:            innerArgs,
					Selector:        sel,
					ConditionalType: kind,
					Inverted:        inverted,
				}},
				Index:   idx,
				ArgType: token.TypeAny,
				Span:    token.Span{Start: start, End: end},
			}, nil
		}
	}
	if inverted {
		return ast.Arg{}, &Error{Kind: InvalidCall, Pos: start}
	}

	val, typ, err := p.parseArgValue()
	if err != nil {
		return ast.Arg{}, err
	}
	return ast.Arg{
		Value:   val,
		Index:   idx,
		ArgType: typ,
		Span:    token.Span{Start: start, End: p.toks[p.pos-1].End},
	}, nil
}

// parseArgValue parses a non-tag, non-condition argument value: a literal,
// a variable reference, a game value, or a compound constructor.
func (p *Parser) parseArgValue() (ast.ArgValue, token.Type, error) {
	start := p.cur().Start

	switch {
	case p.at(token.INT), p.at(token.FLOAT):
		tok := p.advance()
		n, err := strconv.ParseFloat(tok.Literal, 32)
		if err != nil {
			return ast.ArgValue{}, 0, &Error{Kind: InvalidType, Pos: tok.Start}
		}
		return ast.ArgValue{Kind: ast.ValNumber, Number: float32(n)}, token.TypeNumber, nil

	case p.at(token.STRINGLIT):
		tok := p.advance()
		return ast.ArgValue{Kind: ast.ValString, String: tok.Literal}, token.TypeString, nil

	case p.at(token.TEXTLIT):
		tok := p.advance()
		return ast.ArgValue{Kind: ast.ValText, Text: tok.Literal}, token.TypeText, nil

	case p.at(token.VARIABLE):
		tok := p.advance()
		scope, ok := p.vars[tok.Literal]
		if !ok {
			return ast.ArgValue{}, 0, &Error{Kind: UnknownVariable, Pos: start, Name: tok.Literal}
		}
		return ast.ArgValue{Kind: ast.ValVariable, Variable: ast.Variable{Name: tok.Literal, Scope: scope}}, token.TypeVariable, nil

	case p.at(token.LT):
		return p.parseGameValue(start)

	case p.at(token.IDENT) && p.cur().Literal == "loc":
		return p.parseLocation(start)
	case p.at(token.IDENT) && p.cur().Literal == "vec":
		return p.parseVector(start)
	case p.at(token.IDENT) && p.cur().Literal == "sound":
		return p.parseSound(start)
	case p.at(token.IDENT) && p.cur().Literal == "pot":
		return p.parsePotion(start)
	}

	return ast.ArgValue{}, 0, &Error{Kind: InvalidCall, Pos: start}
}

func (p *Parser) parseGameValue(start token.Position) (ast.ArgValue, token.Type, error) {
	p.advance() // '<'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return ast.ArgValue{}, 0, err
	}
	sel, selSpan, err := p.parseSelector()
	if err != nil {
		return ast.ArgValue{}, 0, err
	}
	if _, err := p.expect(token.GT); err != nil {
		return ast.ArgValue{}, 0, err
	}
	return ast.ArgValue{Kind: ast.ValGameValue, GameValue: ast.GameValue{
		Value:        nameTok.Literal,
		Selector:     sel,
		SelectorSpan: selSpan,
	}}, token.TypeGameValue, nil
}

func (p *Parser) parseNumber() (float32, error) {
	tok, err := p.expect(token.INT, token.FLOAT)
	if err != nil {
		return 0, err
	}
	n, parseErr := strconv.ParseFloat(tok.Literal, 32)
	if parseErr != nil {
		return 0, &Error{Kind: InvalidType, Pos: tok.Start}
	}
	return float32(n), nil
}

func (p *Parser) parseLocation(start token.Position) (ast.ArgValue, token.Type, error) {
	p.advance() // 'loc'
	if _, err := p.expect(token.LPAREN); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidLocation, Pos: start}
	}
	x, err := p.parseNumber()
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidLocation, Pos: start}
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidLocation, Pos: start}
	}
	y, err := p.parseNumber()
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidLocation, Pos: start}
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidLocation, Pos: start}
	}
	z, err := p.parseNumber()
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidLocation, Pos: start}
	}
	loc := ast.Location{X: x, Y: y, Z: z}
	if p.at(token.COMMA) {
		p.advance()
		pitch, err := p.parseNumber()
		if err != nil {
			return ast.ArgValue{}, 0, &Error{Kind: InvalidLocation, Pos: start}
		}
		loc.Pitch = &pitch
		if p.at(token.COMMA) {
			p.advance()
			yaw, err := p.parseNumber()
			if err != nil {
				return ast.ArgValue{}, 0, &Error{Kind: InvalidLocation, Pos: start}
			}
			loc.Yaw = &yaw
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidLocation, Pos: start}
	}
	return ast.ArgValue{Kind: ast.ValLocation, Location: loc}, token.TypeLocation, nil
}

func (p *Parser) parseVector(start token.Position) (ast.ArgValue, token.Type, error) {
	p.advance() // 'vec'
	if _, err := p.expect(token.LPAREN); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidVector, Pos: start}
	}
	x, err := p.parseNumber()
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidVector, Pos: start}
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidVector, Pos: start}
	}
	y, err := p.parseNumber()
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidVector, Pos: start}
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidVector, Pos: start}
	}
	z, err := p.parseNumber()
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidVector, Pos: start}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidVector, Pos: start}
	}
	return ast.ArgValue{Kind: ast.ValVector, Vector: ast.Vector{X: x, Y: y, Z: z}}, token.TypeVector, nil
}

func (p *Parser) parseSound(start token.Position) (ast.ArgValue, token.Type, error) {
	p.advance() // 'sound'
	if _, err := p.expect(token.LPAREN); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidSound, Pos: start}
	}
	idTok, err := p.expect(token.STRINGLIT)
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidSound, Pos: start}
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidSound, Pos: start}
	}
	vol, err := p.parseNumber()
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidSound, Pos: start}
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidSound, Pos: start}
	}
	pitch, err := p.parseNumber()
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidSound, Pos: start}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidSound, Pos: start}
	}
	return ast.ArgValue{Kind: ast.ValSound, Sound: ast.Sound{ID: idTok.Literal, Volume: vol, Pitch: pitch}}, token.TypeSound, nil
}

func (p *Parser) parsePotion(start token.Position) (ast.ArgValue, token.Type, error) {
	p.advance() // 'pot'
	if _, err := p.expect(token.LPAREN); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidPotion, Pos: start}
	}
	idTok, err := p.expect(token.STRINGLIT)
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidPotion, Pos: start}
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidPotion, Pos: start}
	}
	amp, err := p.parseNumber()
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidPotion, Pos: start}
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidPotion, Pos: start}
	}
	dur, err := p.parseNumber()
	if err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidPotion, Pos: start}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return ast.ArgValue{}, 0, &Error{Kind: InvalidPotion, Pos: start}
	}
	return ast.ArgValue{Kind: ast.ValPotion, Potion: ast.Potion{ID: idTok.Literal, Amplifier: amp, Duration: dur}}, token.TypePotion, nil
}
