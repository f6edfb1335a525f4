package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/lvillar/fabsheet"
	"github.com/lvillar/fabsheet/catalog"
	"github.com/lvillar/fabsheet/refdata"
	"github.com/lvillar/fabsheet/suitability"
)

// RegisterTools adds the catalog tools to the server. The resolver may be
// nil; tools that need the reference-data service then report an error
// instead of registering conditionally, so clients always see the same
// tool list.
func RegisterTools(s *Server, resolver *refdata.Resolver) {
	s.AddTool(renderSheetTool(resolver))
	s.AddTool(getProductTool(resolver))
	s.AddTool(collectionMembersTool(resolver))
	s.AddTool(suitabilitySummaryTool())
}

func renderSheetTool(resolver *refdata.Resolver) Tool {
	return Tool{
		Name:        "render_sheet",
		Description: "Render a textile product record into an A4 PDF sheet: detail page with hero image, spec table, suitability summaries and QR code, plus collection grid pages. Pass either a product record or a fabric code to fetch. Returns the PDF as base64 unless outputPath is set.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"product": map[string]any{
					"type":        "object",
					"description": "Product record in catalog JSON form (fabricCode, productTitle, composition, suitability, ...)",
				},
				"code": map[string]any{
					"type":        "string",
					"description": "Fabric code to fetch from the reference-data service instead of passing a record",
				},
				"url": map[string]any{
					"type":        "string",
					"description": "Product page URL encoded into the QR code",
				},
				"outputPath": map[string]any{
					"type":        "string",
					"description": "Directory to write <code>.pdf into. If omitted, the PDF is returned as base64.",
				},
			},
		},
		Handler: func(args map[string]any) (ToolResult, error) {
			return handleRenderSheet(resolver, args)
		},
	}
}

func handleRenderSheet(resolver *refdata.Resolver, args map[string]any) (ToolResult, error) {
	ctx := context.Background()

	product, err := resolveProductArg(ctx, resolver, args)
	if err != nil {
		return ToolResult{}, err
	}

	opts := []fabsheet.Option{}
	if resolver != nil {
		opts = append(opts, fabsheet.WithResolver(resolver))
	}
	if u, ok := args["url"].(string); ok && u != "" {
		opts = append(opts, fabsheet.WithProductURL(u))
	}

	if dir, ok := args["outputPath"].(string); ok && dir != "" {
		res, err := fabsheet.Generate(ctx, product, append(opts, fabsheet.WithOutputDir(dir))...)
		if err != nil {
			return ToolResult{}, err
		}
		return textResult(fmt.Sprintf("Sheet written: %s/%s (%d pages, %d grid)",
			dir, res.Filename, res.Pages, res.GridPages)), nil
	}

	var buf bytes.Buffer
	res, err := fabsheet.GenerateTo(ctx, &buf, product, opts...)
	if err != nil {
		return ToolResult{}, err
	}
	return ToolResult{
		Content: []ContentBlock{
			{Type: "text", Text: fmt.Sprintf("%s: %d pages, %d grid", res.Filename, res.Pages, res.GridPages)},
			{Type: "resource", MIMEType: "application/pdf", Data: base64.StdEncoding.EncodeToString(buf.Bytes())},
		},
	}, nil
}

// resolveProductArg accepts either an inline record or a fabric code.
func resolveProductArg(ctx context.Context, resolver *refdata.Resolver, args map[string]any) (*catalog.Product, error) {
	if raw, ok := args["product"]; ok {
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("encoding product: %w", err)
		}
		var product catalog.Product
		if err := json.Unmarshal(data, &product); err != nil {
			return nil, fmt.Errorf("decoding product: %w", err)
		}
		return &product, nil
	}

	code, _ := args["code"].(string)
	if code == "" {
		return nil, fmt.Errorf("missing 'product' or 'code' argument")
	}
	if resolver == nil {
		return nil, fmt.Errorf("no reference-data service configured; pass a 'product' record instead")
	}
	return resolver.ProductByCode(ctx, code)
}

func getProductTool(resolver *refdata.Resolver) Tool {
	return Tool{
		Name:        "get_product",
		Description: "Fetch a product record from the reference-data service by fabric code. Returns the record as JSON.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"code": map[string]any{
					"type":        "string",
					"description": "Fabric code of the product",
				},
			},
			"required": []string{"code"},
		},
		Handler: func(args map[string]any) (ToolResult, error) {
			code, _ := args["code"].(string)
			if code == "" {
				return ToolResult{}, fmt.Errorf("missing 'code' argument")
			}
			if resolver == nil {
				return ToolResult{}, fmt.Errorf("no reference-data service configured")
			}

			product, err := resolver.ProductByCode(context.Background(), code)
			if err != nil {
				return ToolResult{}, err
			}
			return jsonResult(product)
		},
	}
}

func collectionMembersTool(resolver *refdata.Resolver) Tool {
	return Tool{
		Name:        "collection_members",
		Description: "List the live members of a product collection sorted by fabric code. Returns a JSON array of records.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"collectionId": map[string]any{
					"type":        "string",
					"description": "Collection id shared by the member products",
				},
			},
			"required": []string{"collectionId"},
		},
		Handler: func(args map[string]any) (ToolResult, error) {
			id, _ := args["collectionId"].(string)
			if id == "" {
				return ToolResult{}, fmt.Errorf("missing 'collectionId' argument")
			}
			if resolver == nil {
				return ToolResult{}, fmt.Errorf("no reference-data service configured")
			}

			members, err := resolver.CollectionProducts(context.Background(), id)
			if err != nil {
				return ToolResult{}, err
			}
			return jsonResult(members)
		},
	}
}

func suitabilitySummaryTool() Tool {
	return Tool{
		Name:        "suitability_summary",
		Description: "Aggregate raw suitability lines ('Segment | Use | 80%') into per-segment sentences, the same summaries printed on the sheet. Returns JSON groups with segment, uses, and sentence.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"lines": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Raw suitability lines from the product record",
				},
				"maxUses": map[string]any{
					"type":        "integer",
					"description": "Per-segment cap on listed uses (default 3)",
				},
			},
			"required": []string{"lines"},
		},
		Handler: func(args map[string]any) (ToolResult, error) {
			raw, ok := args["lines"].([]any)
			if !ok {
				return ToolResult{}, fmt.Errorf("missing 'lines' argument")
			}
			lines := make([]string, 0, len(raw))
			for _, v := range raw {
				if s, ok := v.(string); ok {
					lines = append(lines, s)
				}
			}

			maxUses := 3
			if n, ok := args["maxUses"].(float64); ok && n > 0 {
				maxUses = int(n)
			}

			groups := suitability.Aggregate(suitability.ParseLines(lines), maxUses)
			return jsonResult(groups)
		},
	}
}

func textResult(text string) ToolResult {
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: text}}}
}

func jsonResult(v any) (ToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ToolResult{}, fmt.Errorf("encoding result: %w", err)
	}
	return ToolResult{Content: []ContentBlock{{Type: "text", MIMEType: "application/json", Text: string(data)}}}, nil
}
