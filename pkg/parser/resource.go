package parser

import "strings"

// resourceAliases maps kubectl resource type shorthand and plurals to
// their canonical singular form. Unknown resource strings pass through
// lowercased unchanged.
var resourceAliases = map[string]string{
	"po":                       "pod",
	"pods":                     "pod",
	"svc":                      "service",
	"services":                 "service",
	"deploy":                   "deployment",
	"deployments":              "deployment",
	"rs":                       "replicaset",
	"replicasets":              "replicaset",
	"ds":                       "daemonset",
	"daemonsets":               "daemonset",
	"sts":                      "statefulset",
	"statefulsets":             "statefulset",
	"cm":                       "configmap",
	"configmaps":               "configmap",
	"ns":                       "namespace",
	"namespaces":               "namespace",
	"no":                       "node",
	"nodes":                    "node",
	"pv":                       "persistentvolume",
	"persistentvolumes":        "persistentvolume",
	"pvc":                      "persistentvolumeclaim",
	"persistentvolumeclaims":   "persistentvolumeclaim",
	"ing":                      "ingress",
	"ingresses":                "ingress",
	"netpol":                   "networkpolicy",
	"networkpolicies":          "networkpolicy",
	"sa":                       "serviceaccount",
	"serviceaccounts":          "serviceaccount",
	"hpa":                      "horizontalpodautoscaler",
	"horizontalpodautoscalers": "horizontalpodautoscaler",
	"cj":                       "cronjob",
	"cronjobs":                 "cronjob",
	"jobs":                     "job",
	"secrets":                  "secret",
	"ep":                       "endpoints",
	"endpoints":                "endpoints",
	"ev":                       "event",
	"events":                   "event",
}

// normalizeResourceType maps a kubectl resource token to its canonical
// singular form.
func normalizeResourceType(resource string) string {
	lower := strings.ToLower(resource)
	if canonical, ok := resourceAliases[lower]; ok {
		return canonical
	}
	return lower
}
