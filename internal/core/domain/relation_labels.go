package domain

// relationLabels maps extractor relation types to display labels.
var relationLabels = map[string]string{
	"WORKS_AT":        "工作于",
	"WORKS_FOR":       "任职于",
	"LOCATED_IN":      "位于",
	"BELONGS_TO":      "属于",
	"PART_OF":         "组成部分",
	"FOUNDED":         "创立",
	"FOUNDED_BY":      "创立者",
	"MANAGES":         "管理",
	"MANAGED_BY":      "由…管理",
	"OWNS":            "拥有",
	"OWNED_BY":        "归属于",
	"PRODUCES":        "生产",
	"SELLS":           "销售",
	"BUYS":            "购买",
	"SUPPLIES":        "供应",
	"CUSTOMER_OF":     "客户",
	"PARTNER_OF":      "合作伙伴",
	"COOPERATES_WITH": "合作",
	"COMPETES_WITH":   "竞争",
	"SUBSIDIARY_OF":   "子公司",
	"INVESTS_IN":      "投资",
	"ACQUIRED":        "收购",
	"BORN_IN":         "出生于",
	"LIVES_IN":        "居住于",
	"STUDIED_AT":      "就读于",
	"KNOWS":           "认识",
	"MARRIED_TO":      "配偶",
	"PARENT_OF":       "父母",
	"CHILD_OF":        "子女",
	"MEMBER_OF":       "成员",
	"LEADS":           "领导",
	"HAS_PRODUCT":     "产品",
	"USES":            "使用",
	"RELATED_TO":      "相关",
}

// RelationLabel returns the display label for a relation type, or the raw
// type when it is not mapped.
func RelationLabel(relationType string) string {
	if label, ok := relationLabels[relationType]; ok {
		return label
	}
	return relationType
}
