package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/mfarias/rutasur/internal/core/domain"
)

// buildSchema creates the read-only GraphQL schema over the catalog and the
// telemetry history.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	routeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Route",
		Fields: graphql.Fields{
			"name":          &graphql.Field{Type: graphql.String},
			"points":        &graphql.Field{Type: graphql.Int},
			"length_meters": &graphql.Field{Type: graphql.Float},
		},
	})

	positionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Position",
		Fields: graphql.Fields{
			"message_id":   &graphql.Field{Type: graphql.String},
			"latitude":     &graphql.Field{Type: graphql.Float},
			"longitude":    &graphql.Field{Type: graphql.Float},
			"street":       &graphql.Field{Type: graphql.String},
			"city":         &graphql.Field{Type: graphql.String},
			"state":        &graphql.Field{Type: graphql.String},
			"full_address": &graphql.Field{Type: graphql.String},
		},
	})

	positionMap := func(r domain.TelemetryRecord) map[string]interface{} {
		return map[string]interface{}{
			"message_id":   r.MessageID,
			"latitude":     r.PositionStatus.Latitude,
			"longitude":    r.PositionStatus.Longitude,
			"street":       r.PositionStatus.Street,
			"city":         r.PositionStatus.City,
			"state":        r.PositionStatus.State,
			"full_address": r.PositionStatus.FullAddress,
		}
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"history": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "Resolved route names in catalog order",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Catalog.Names(), nil
				},
			},
			"routes": &graphql.Field{
				Type:        graphql.NewList(routeType),
				Description: "Route summaries in catalog order",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Catalog.Summaries(), nil
				},
			},
			"track": &graphql.Field{
				Type:        graphql.NewList(graphql.NewList(graphql.Float)),
				Description: "Polyline for a named route, longitude-first vertices",
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name := p.Args["name"].(string)
					polyline, err := deps.Catalog.Track(name)
					if err != nil {
						return nil, err
					}
					out := make([][]float64, len(polyline))
					for i, coord := range polyline {
						out[i] = []float64{coord.Lon(), coord.Lat()}
					}
					return out, nil
				},
			},
			"positions": &graphql.Field{
				Type:        graphql.NewList(positionType),
				Description: "Telemetry positions newest-first with derived address",
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					records, err := deps.Positions.LatestFirst(p.Context)
					if err != nil {
						return nil, err
					}
					limit := p.Args["limit"].(int)
					if limit > 0 && limit < len(records) {
						records = records[:limit]
					}
					out := make([]map[string]interface{}, len(records))
					for i, r := range records {
						out[i] = positionMap(r)
					}
					return out, nil
				},
			},
			"telemetry": &graphql.Field{
				Type:        graphql.NewList(positionType),
				Description: "Raw telemetry in chronological order",
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					records, err := deps.Positions.History(p.Context)
					if err != nil {
						return nil, err
					}
					limit := p.Args["limit"].(int)
					if limit > 0 && limit < len(records) {
						records = records[:limit]
					}
					out := make([]map[string]interface{}, len(records))
					for i, r := range records {
						out[i] = positionMap(r)
					}
					return out, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
